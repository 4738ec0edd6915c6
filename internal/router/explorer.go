package router

import (
	"context"
	"net/http"
	"strconv"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
	"github.com/DjordjeVuckovic/ir-explorer/internal/explain"
	"github.com/DjordjeVuckovic/ir-explorer/internal/explorer"
	"github.com/labstack/echo/v4"
)

// Service is the read side of the loaded runs.
type Service interface {
	RunInfos() []domain.RunInfo
	Clusters(run string) (map[string]domain.Cluster, error)
	QueryDocuments(ctx context.Context, run, qid string) (explorer.QueryResult, error)
	DocumentInfo(ctx context.Context, run, qid, did string) (explain.DocumentInfo, error)
}

type RunInfoResponse struct {
	Runs []domain.RunInfo `json:"runs"`
}

type ClustersResponse struct {
	Clusters map[string]domain.Cluster `json:"clusters"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}

type ExplorerRouter struct {
	e       *echo.Echo
	service Service
}

func NewExplorerRouter(e *echo.Echo, service Service) *ExplorerRouter {
	return &ExplorerRouter{
		e:       e,
		service: service,
	}
}

func (r *ExplorerRouter) Bind() {
	r.e.GET("/run-info", r.runInfoHandler)
	r.e.GET("/evaluated-queries/:run", r.evaluatedQueriesHandler)
	r.e.GET("/query/:run/:qid", r.queryHandler)
	r.e.GET("/query/:run/:qid/:did", r.documentHandler)
}

// runInfoHandler godoc
// @Summary List configured runs
// @Tags runs
// @Produce json
// @Success 200 {object} RunInfoResponse
// @Router /run-info [get]
func (r *ExplorerRouter) runInfoHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, RunInfoResponse{Runs: r.service.RunInfos()})
}

// evaluatedQueriesHandler godoc
// @Summary Query clusters of a run
// @Tags queries
// @Produce json
// @Param run path int true "Run index"
// @Success 200 {object} ClustersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /evaluated-queries/{run} [get]
func (r *ExplorerRouter) evaluatedQueriesHandler(c echo.Context) error {
	run, err := runParam(c)
	if err != nil {
		return err
	}

	clusters, err := r.service.Clusters(run)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ClustersResponse{Clusters: clusters})
}

// queryHandler godoc
// @Summary Explain every evaluated document of a query
// @Tags queries
// @Produce json
// @Param run path int true "Run index"
// @Param qid path string true "Query id"
// @Success 200 {object} explorer.QueryResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /query/{run}/{qid} [get]
func (r *ExplorerRouter) queryHandler(c echo.Context) error {
	run, err := runParam(c)
	if err != nil {
		return err
	}

	res, err := r.service.QueryDocuments(c.Request().Context(), run, c.Param("qid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// documentHandler godoc
// @Summary Explain one document of a query
// @Tags queries
// @Produce json
// @Param run path int true "Run index"
// @Param qid path string true "Query id"
// @Param did path string true "Document id"
// @Success 200 {object} explain.DocumentInfo
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /query/{run}/{qid}/{did} [get]
func (r *ExplorerRouter) documentHandler(c echo.Context) error {
	run, err := runParam(c)
	if err != nil {
		return err
	}

	info, err := r.service.DocumentInfo(c.Request().Context(), run, c.Param("qid"), c.Param("did"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}

// runParam returns the canonical key of the :run path parameter.
func runParam(c echo.Context) (string, error) {
	raw := c.Param("run")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return "", apperr.NewValidationWrap("run must be an integer", err)
	}
	if n < 0 {
		return "", apperr.NewValidation("run must be non-negative, got " + raw)
	}
	return strconv.Itoa(n), nil
}
