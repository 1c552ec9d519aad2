package api

import (
	"context"

	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/view"
)

func (a *apiImpl) Stats(ctx context.Context) view.Stats {
	return view.Summarize(a.store.GetAll(), a.clock.Now())
}

func (a *apiImpl) Theme(ctx context.Context) domain.Theme {
	return a.storage.LoadTheme(ctx)
}

func (a *apiImpl) SetTheme(ctx context.Context, theme string) (domain.Theme, error) {
	parsed, ok := domain.ParseTheme(theme)
	if !ok {
		return "", errors.NewInvalidInputError("theme", theme, "must be light or dark")
	}
	if err := a.storage.SaveTheme(ctx, parsed); err != nil {
		return "", err
	}
	return parsed, nil
}

func (a *apiImpl) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	next := a.storage.LoadTheme(ctx).Toggle()
	if err := a.storage.SaveTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
