package scrape

import (
	"strings"

	"visahunt/internal/config"
	"visahunt/internal/scrape/greenhouse"
	"visahunt/internal/scrape/lever"
)

func MapGreenhouseBoards(in []config.Board) []greenhouse.Board {
	out := make([]greenhouse.Board, 0, len(in))
	for _, b := range in {
		u := strings.TrimSpace(b.BoardURL)
		if u == "" {
			continue
		}
		out = append(out, greenhouse.Board{Company: boardName(b), URL: u})
	}
	return out
}

func MapLeverBoards(in []config.Board) []lever.Board {
	out := make([]lever.Board, 0, len(in))
	for _, b := range in {
		u := strings.TrimSpace(b.BoardURL)
		if u == "" {
			continue
		}
		out = append(out, lever.Board{Company: boardName(b), URL: u})
	}
	return out
}

func boardName(b config.Board) string {
	if name := strings.TrimSpace(b.Name); name != "" {
		return name
	}
	return strings.TrimSpace(b.BoardURL)
}
