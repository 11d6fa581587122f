package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/preplock/internal/domain"
)

// resolveID matches input against ids: an exact match wins, otherwise a
// unique prefix.
func resolveID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveSourceID(ctx context.Context, app *App, owner, input string) (string, error) {
	sources, err := app.Sources.List(ctx, owner)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(sources))
	for i, s := range sources {
		ids[i] = s.ID
	}
	return resolveID("source", input, ids)
}

// resolveRoadmap loads the roadmap named by input, or the active roadmap
// when input is empty.
func resolveRoadmap(ctx context.Context, app *App, owner, input string) (*domain.Roadmap, error) {
	if input == "" {
		r, err := app.Roadmaps.GetActive(ctx, owner)
		if err != nil {
			return nil, fmt.Errorf("no roadmap given and no active roadmap: %w", err)
		}
		return r, nil
	}

	roadmaps, err := app.Roadmaps.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(roadmaps))
	for i, r := range roadmaps {
		ids[i] = r.ID
	}
	id, err := resolveID("roadmap", input, ids)
	if err != nil {
		return nil, err
	}
	return app.Roadmaps.Get(ctx, owner, id)
}

// resolveTaskID searches the tasks of every roadmap the owner has.
func resolveTaskID(ctx context.Context, app *App, owner, input string) (string, error) {
	roadmaps, err := app.Roadmaps.List(ctx, owner)
	if err != nil {
		return "", err
	}
	var ids []string
	for _, r := range roadmaps {
		tasks, err := app.Tasks.ListByRoadmap(ctx, owner, r.ID)
		if err != nil {
			return "", err
		}
		for _, t := range tasks {
			ids = append(ids, t.ID)
		}
	}
	return resolveID("task", input, ids)
}
