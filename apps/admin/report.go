package main

import (
	"context"
	"fmt"

	"github.com/apper-canvas/insta-studyhub-auto/core/course"
	"github.com/apper-canvas/insta-studyhub-auto/core/grading"
)

// paint renders `s` in the terminal color of a letter grade.
func (cli *commandLine) paint(s string, letter grading.Letter) string {
	switch letter.Color {
	case grading.ColorGreen:
		return cli.color.Green(s)
	case grading.ColorBlue:
		return cli.color.Blue(s)
	case grading.ColorYellow:
		return cli.color.Yellow(s)
	case grading.ColorOrange:
		return cli.color.Magenta(s)
	default:
		return cli.color.Red(s)
	}
}

func (cli *commandLine) report(ctx context.Context, withGrades bool) error {
	summaries, err := cli.services.Report.Courses(ctx, course.QueryFilter{})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cli.out, cli.color.Bold("Courses"))
	if len(summaries) == 0 {
		_, _ = fmt.Fprintln(cli.out, "  no courses")
	}
	for _, s := range summaries {
		_, _ = fmt.Fprintf(cli.out, "  %-28s %-7s %s  %5.1f%% of target  %d pending, %d completed\n",
			s.Course.Name,
			grading.FormatScore(s.Grade),
			cli.paint(s.Letter.Letter, s.Letter),
			s.Progress,
			s.Pending,
			s.Completed,
		)
	}

	if !withGrades {
		return nil
	}

	rep, err := cli.services.Report.Grades(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cli.out)
	_, _ = fmt.Fprintln(cli.out, cli.color.Bold("Grades"))
	_, _ = fmt.Fprintf(cli.out, "  overall: %.1f%% %s\n", rep.Overall, cli.paint(rep.Letter.Letter, rep.Letter))
	_, _ = fmt.Fprintf(cli.out, "  highest: %s, lowest: %s\n", grading.FormatScore(rep.Highest), grading.FormatScore(rep.Lowest))
	_, _ = fmt.Fprintf(cli.out, "  on track: %d/%d\n", rep.OnTrackCount, len(rep.Courses))
	for _, letter := range grading.Letters {
		_, _ = fmt.Fprintf(cli.out, "  %s: %d\n", letter, rep.Distribution[letter])
	}
	return nil
}
