package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/linkedit/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	LinksLoaded *int   `json:"links_loaded,omitempty"`
	IconsLoaded *int   `json:"icons_loaded,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	StorageMode string                     `json:"storage_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		linksCount := d.Links.Count()
		lastReload := d.Links.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		iconsCount := 0
		if d.Pack != nil {
			iconsCount = len(d.Pack.Names())
		}

		components := map[string]componentStatus{
			"links": {
				OK:          true,
				LinksLoaded: &linksCount,
				LastReload:  lastReloadStr,
			},
			"icons": {
				OK:          true,
				IconsLoaded: &iconsCount,
			},
			"redis": checkRedis(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			StorageMode: determineStorageMode(components),
			Components:  components,
		})
	}
}

func determineStorageMode(components map[string]componentStatus) string {
	redis, exists := components["redis"]
	switch {
	case !exists || redis.Mode == "disabled":
		return "memory"
	case !redis.OK:
		return "degraded" // edits are kept in memory only until Redis is back
	default:
		return "persistent"
	}
}

func checkRedis(parent context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "edits-not-persisted",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "edits-not-persisted",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "edits-persisted",
	}
}
