package handlers

import (
	"net/url"
	"strconv"

	"server/internal/domain"
)

func parseIntParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// pageFromQuery reads skip/take with the contract defaults and clamps them.
func pageFromQuery(q url.Values) domain.Page {
	skip := parseIntParam(q.Get("skip"), 0)
	take := parseIntParam(q.Get("take"), domain.DefaultPageSize)
	return domain.ClampPage(skip, take)
}
