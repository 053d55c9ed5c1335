package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/killallgit/moviepreview/api/types"
	"github.com/killallgit/moviepreview/internal/services/itunes"
	"github.com/killallgit/moviepreview/internal/services/playback"
	apperrors "github.com/killallgit/moviepreview/pkg/errors"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		play   int
	)

	searchCmd := &cobra.Command{
		Use:   "search <term...>",
		Short: "Search iTunes for movies",
		Long: `Search the iTunes movie catalog and list title, director and preview URL.

A failed lookup prints an empty list; details are in the logs.

Example:
  moviepreview search batman
  moviepreview search the dark knight --json
  moviepreview search batman --play 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")
			if strings.TrimSpace(term) == "" {
				return apperrors.ValidationError("term", "search term is required")
			}
			if play < 0 {
				return apperrors.ValidationError("play", "must be a positive result number")
			}

			movies := a.search(cmd.Context(), term)

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, term, movies); err != nil {
					return err
				}
			} else if err := writeTable(out, movies); err != nil {
				return err
			}

			if play == 0 {
				return nil
			}
			if play > len(movies) {
				return apperrors.NotFound("result", play)
			}
			return a.play(out, movies[play-1])
		},
	}

	searchCmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	searchCmd.Flags().IntVar(&play, "play", 0, "play the preview of result N (1-based)")

	return searchCmd
}

// search runs one lookup and waits for its completion on this goroutine
func (a *app) search(ctx context.Context, term string) []itunes.MovieRecord {
	client := itunes.NewClient(itunes.Config{
		BaseURL:   a.cfg.ITunes.BaseURL,
		Timeout:   a.cfg.ITunes.Timeout,
		UserAgent: a.cfg.ITunes.UserAgent,
		Country:   a.cfg.ITunes.Country,
		Logger:    a.logger,
	})

	queue := itunes.NewMainQueue()
	var movies []itunes.MovieRecord
	client.Search(ctx, term, func(results []itunes.MovieRecord) {
		movies = results
		queue.Stop()
	}, itunes.WithDispatcher(queue))

	// The completion always arrives; a cancelled ctx just makes it empty
	queue.Run(context.Background())
	return movies
}

func (a *app) play(out io.Writer, movie itunes.MovieRecord) error {
	launcher := playback.NewLauncher(a.cfg.Player.Command, a.cfg.Player.Args, a.logger, a.launcherOpts...)
	player := playback.NewPlayer(launcher, a.cfg.Player.Autoplay, a.logger)

	if err := player.Load(movie); err != nil {
		return fmt.Errorf("failed to load preview for %q: %w", movie.Title, err)
	}
	if !player.IsPlaying() {
		if err := player.Play(); err != nil {
			return fmt.Errorf("failed to play preview for %q: %w", movie.Title, err)
		}
	}

	fmt.Fprintf(out, "Playing %q with %s\n", movie.Title, player.LaunchedWith())
	return nil
}

func writeTable(out io.Writer, movies []itunes.MovieRecord) error {
	if len(movies) == 0 {
		_, err := fmt.Fprintln(out, "No movies found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTITLE\tDIRECTOR\tPREVIEW")
	for i, m := range movies {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, m.Title, m.Director, m.PreviewURL)
	}
	return w.Flush()
}

func writeJSON(out io.Writer, term string, movies []itunes.MovieRecord) error {
	list := types.FromMovieRecordList(movies)
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(types.MovieSearchResponse{
		BaseResponse: types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Search results retrieved successfully",
		},
		Movies: list,
		Query:  term,
		Count:  len(list),
	})
}
