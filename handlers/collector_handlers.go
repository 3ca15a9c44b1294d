package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webstats/api/config"
	"webstats/api/services"
	"webstats/api/store"
	"webstats/api/utils"
)

// CollectorHandlers serves the tracking snippet. Fetching it is the visitor
// bootstrap: resolve the client IP to a city, find-or-create that city,
// create a session, and hand the session id back baked into the script.
type CollectorHandlers struct {
	Cities   *store.CityStore
	Sessions *store.SessionStore
	Geo      *services.IPInfoResolver
	Config   *config.Config
	Log      *zap.Logger
}

func NewCollectorHandlers(
	cities *store.CityStore,
	sessions *store.SessionStore,
	geo *services.IPInfoResolver,
	cfg *config.Config,
	log *zap.Logger,
) *CollectorHandlers {
	return &CollectorHandlers{Cities: cities, Sessions: sessions, Geo: geo, Config: cfg, Log: log}
}

// StatsJS handles GET /stats.js.
func (h *CollectorHandlers) StatsJS(c *gin.Context) {
	ip := c.ClientIP()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	// Degrades to an empty city candidate; the session still gets created.
	city, err := h.Geo.Resolve(ip)
	if err != nil {
		h.Log.Warn("geo resolution degraded for collector bootstrap", zap.String("ip", ip), zap.Error(err))
	}

	cityID, err := h.Cities.FindOrCreate(ctx, city, ip)
	if err != nil {
		h.Log.Error("failed to record city for collector", zap.Error(err))
		h.failJS(c, "city registration failed")
		return
	}

	userAgent := c.Request.UserAgent()
	os := utils.ParseOS(userAgent)
	browser := utils.ParseBrowser(userAgent)

	collectorID, err := h.Sessions.Create(ctx, ip, cityID, &os, &browser)
	if err != nil {
		h.Log.Error("failed to create session for collector", zap.Error(err))
		h.failJS(c, "session creation failed")
		return
	}

	c.Data(http.StatusOK, "application/javascript; charset=utf-8",
		[]byte(analyticsJS(collectorID, h.Config.AppURL)))
}

func (h *CollectorHandlers) failJS(c *gin.Context, reason string) {
	fallback := fmt.Sprintf(`"use strict";
(function() {
    console.error("Analytics initialization failed: %s");
    window.stats_collect = function() {
        console.warn("Analytics disabled due to initialization error");
    };
})();`, reason)
	c.Data(http.StatusInternalServerError, "application/javascript; charset=utf-8", []byte(fallback))
}

// analyticsJS renders the tracking snippet. The script reports an "enter"
// event on load, "visit" on history navigation, "leave" on outbound link
// clicks and "exit" on unload, all beaconed to GET /collect.
func analyticsJS(collectorID, appURL string) string {
	js := `"use strict";
(function() {
    var collectorId = "__COLLECTOR_ID__";
    var appUrl = "__APP_URL__";

    function init() {
        document.addEventListener('click', function(event) {
            if (event.target.tagName === 'A') {
                var target = event.target.getAttribute('target');
                var href = event.target.getAttribute('href');

                if (target === '_blank') {
                    stats_collect('leave', href);
                }
            }
        });

        window.addEventListener("beforeunload", function(event) {
            stats_collect('exit');
        });

        function wrapHistoryMethod(method) {
            var original = history[method];
            history[method] = function(state, title, url) {
                var fullUrl = new URL(url, window.location.origin).href;
                original.apply(this, arguments);
                stats_collect('visit', fullUrl);
            };
        }

        wrapHistoryMethod('pushState');
        wrapHistoryMethod('replaceState');

        window.addEventListener('popstate', function(event) {
            stats_collect('visit', location.href);
        });
    }

    async function send(type, url_override, referrer) {
        var url = new URL(appUrl + "/collect");

        url.searchParams.set('collector_id', collectorId);
        url.searchParams.set('name', type || 'pageview');
        url.searchParams.set('url', url_override || window.location.href);
        url.searchParams.set('referrer', referrer || document.referrer);

        fetch(url).catch(function(rejected) {
            console.error("failed to collect", rejected);
        });
    }

    async function stats_collect(type, url) {
        await send(type, url);
    }

    window.stats_collect = stats_collect;
    stats_collect('enter');

    window.addEventListener('load', function() {
        init();
    });
})();
`
	js = strings.ReplaceAll(js, "__COLLECTOR_ID__", collectorID)
	return strings.ReplaceAll(js, "__APP_URL__", appURL)
}
