package stub

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

// DefaultContext is the window size used when a request omits "context".
const DefaultContext = 5

// APIDocsPath serves the OpenAPI description of the routes.
const APIDocsPath = "/apidocs.json"

// Handler serves the transcript search wire interface from a Store.
type Handler struct {
	store *Store
}

// NewHandler returns an http.Handler exposing store with permissive CORS.
func NewHandler(store *Store) http.Handler {
	container := restful.NewContainer()
	RegisterRoutes(container, &Handler{store: store})
	container.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       APIDocsPath,
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}))
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(container)
}

// RegisterRoutes mounts the search endpoints on container.
func RegisterRoutes(container *restful.Container, h *Handler) {
	ws := new(restful.WebService)
	ws.Path("/").Produces(restful.MIME_JSON).Filter(logRequest)

	ws.Route(ws.GET("/search").To(h.Search).
		Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
		Doc("Ranked word search").
		Param(ws.QueryParameter("query", "free text query").Required(true)).
		Param(ws.QueryParameter("page", "zero-based page").DataType("integer")).
		Param(ws.QueryParameter("context", "words either side of a match").DataType("integer")).
		Param(ws.QueryParameter("remove_stop_words", "drop stop words before matching").DataType("boolean")))

	ws.Route(ws.GET("/search_exact").To(h.SearchExact).
		Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
		Doc("Consecutive phrase search").
		Param(ws.QueryParameter("query", "phrase").Required(true)).
		Param(ws.QueryParameter("page", "zero-based page").DataType("integer")))

	ws.Route(ws.GET("/ids").To(h.IDs).
		Metadata(restfulspec.KeyOpenAPITags, []string{"transcripts"}).
		Doc("Transcript id to path map"))

	ws.Route(ws.GET("/diagnostics").To(h.Diagnostics).
		Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
		Doc("Query interpretation").
		Param(ws.QueryParameter("query", "free text query").Required(true)))

	ws.Route(ws.GET("/transcript").To(h.Transcript).
		Metadata(restfulspec.KeyOpenAPITags, []string{"transcripts"}).
		Doc("All words of one transcript").
		Param(ws.QueryParameter("path", "relative transcript path").Required(true)))

	container.Add(ws)
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "heurisko search stub",
			Description: "Fixture-backed transcript search",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "search", Description: "Query transcripts"}},
		{TagProps: spec.TagProps{Name: "transcripts", Description: "Browse transcripts"}},
	}
}

// Search handles GET /search
func (h *Handler) Search(req *restful.Request, resp *restful.Response) {
	page, err := intParam(req, "page", 0)
	if err != nil {
		badRequest(resp, err)
		return
	}
	context, err := intParam(req, "context", DefaultContext)
	if err != nil {
		badRequest(resp, err)
		return
	}
	removeStop := false
	if v := req.QueryParameter("remove_stop_words"); v != "" {
		if removeStop, err = strconv.ParseBool(v); err != nil {
			badRequest(resp, fmt.Errorf("remove_stop_words: %w", err))
			return
		}
	}
	results := h.store.Search(req.QueryParameter("query"), context, page, removeStop)
	writeJSON(resp, results)
}

// SearchExact handles GET /search_exact
func (h *Handler) SearchExact(req *restful.Request, resp *restful.Response) {
	page, err := intParam(req, "page", 0)
	if err != nil {
		badRequest(resp, err)
		return
	}
	results := h.store.SearchExact(req.QueryParameter("query"), DefaultContext, page)
	if results == nil {
		writeNull(resp)
		return
	}
	writeJSON(resp, results)
}

func (h *Handler) IDs(_ *restful.Request, resp *restful.Response) {
	writeJSON(resp, h.store.IDs())
}

func (h *Handler) Diagnostics(req *restful.Request, resp *restful.Response) {
	writeJSON(resp, h.store.Diagnose(req.QueryParameter("query")))
}

// Transcript writes null for unknown paths, matching the upstream server.
func (h *Handler) Transcript(req *restful.Request, resp *restful.Response) {
	words, ok := h.store.Transcript(req.QueryParameter("path"))
	if !ok {
		writeNull(resp)
		return
	}
	writeJSON(resp, words)
}

func intParam(req *restful.Request, name string, def int) (int, error) {
	v := req.QueryParameter(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: expected non-negative integer, got %q", name, v)
	}
	return n, nil
}

func writeJSON(resp *restful.Response, v any) {
	if err := resp.WriteHeaderAndJson(http.StatusOK, v, restful.MIME_JSON); err != nil {
		log.Error().Err(err).Msg("write response")
	}
}

// writeNull answers a JSON null, which WriteHeaderAndJson cannot produce.
func writeNull(resp *restful.Response) {
	resp.Header().Set("Content-Type", restful.MIME_JSON)
	resp.WriteHeader(http.StatusOK)
	_, _ = resp.Write([]byte("null"))
}

func badRequest(resp *restful.Response, err error) {
	_ = resp.WriteErrorString(http.StatusBadRequest, err.Error())
}

func logRequest(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)
	ev := log.Info()
	if resp.StatusCode() >= 400 {
		ev = log.Warn()
	}
	ev.Str("method", req.Request.Method).
		Str("uri", req.Request.URL.RequestURI()).
		Str("request_id", req.HeaderParameter("X-Request-ID")).
		Int("status", resp.StatusCode()).
		Dur("latency", time.Since(start)).
		Msg("request")
}
