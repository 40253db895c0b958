// Package urls builds public frontend links for memory pages.
package urls

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	frontendGroup = "frontend"
	pageRoute     = "page"
)

// Resolver turns a page slug into the public URL visitors scan or share.
type Resolver struct {
	manager *urlkit.RouteManager
}

// NewResolver builds a resolver for the given frontend base URL. The page
// route is fixed at /m/:slug.
func NewResolver(frontendBaseURL string) (*Resolver, error) {
	base := strings.TrimRight(strings.TrimSpace(frontendBaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("urls: frontend base URL is required")
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    frontendGroup,
				BaseURL: base,
				Paths: map[string]string{
					pageRoute: "/m/:slug",
				},
			},
		},
	})

	return &Resolver{manager: manager}, nil
}

// PageURL resolves the public address for a page slug.
func (r *Resolver) PageURL(slug string) (string, error) {
	if r == nil || r.manager == nil {
		return "", fmt.Errorf("urls: route manager not configured")
	}

	group, err := lookupGroup(r.manager, frontendGroup)
	if err != nil {
		return "", err
	}

	builder, err := safeBuilder(group, pageRoute)
	if err != nil {
		return "", err
	}

	return builder.WithParam("slug", slug).Build()
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("urls: route group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
