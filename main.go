package main

import "github.com/killallgit/moviepreview/cmd"

// @title           Movie Preview API
// @version         1.0.0
// @description     Search the iTunes movie catalog and get preview links
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/moviepreview
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
