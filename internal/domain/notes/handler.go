package notes

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	wordMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	pdfMIME  = "application/pdf"
)

// Handler exposes the note pipeline over HTTP.
type Handler struct {
	registry  *Registry
	generator *Generator
}

func NewHandler(registry *Registry, generator *Generator) *Handler {
	return &Handler{registry: registry, generator: generator}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/notes/:ns/template", h.LoadTemplate)
	g.POST("/notes/:ns/merge", h.MergeFields)
	g.POST("/notes/:ns/export/word", h.ExportWord)
	g.POST("/notes/:ns/export/pdf", h.ExportPDF)
	g.POST("/notes/generate/:kind", h.Generate)
	g.POST("/notes/generate-eval", h.GenerateEval)
}

func nsParam(c echo.Context) (Namespace, error) {
	ns := Namespace(c.Param("ns"))
	if !ns.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown namespace %q", c.Param("ns")))
	}
	return ns, nil
}

type loadTemplateRequest struct {
	Template string `json:"template"`
}

// LoadTemplate returns the list of template names when no name is given,
// or the resolved field mapping for the named template.
func (h *Handler) LoadTemplate(c echo.Context) error {
	ns, err := nsParam(c)
	if err != nil {
		return err
	}
	var req loadTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Template == "" {
		names := h.registry.Names(ns)
		if names == nil {
			names = []string{}
		}
		return c.JSON(http.StatusOK, names)
	}
	fields, err := h.registry.Resolve(ns, req.Template)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	NormalizeLegacyGoals(ns, fields)
	return c.JSON(http.StatusOK, fields)
}

type mergeRequest struct {
	Base       Fields            `json:"base"`
	Overrides  Fields            `json:"overrides"`
	Insertions map[string]string `json:"insertions"`
}

// MergeFields consolidates base fields, submitted overrides, and narrative
// insertions into one note record.
func (h *Handler) MergeFields(c echo.Context) error {
	ns, err := nsParam(c)
	if err != nil {
		return err
	}
	var req mergeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	merged := Merge(req.Base, req.Overrides, req.Insertions)
	NormalizeLegacyGoals(ns, merged)
	return c.JSON(http.StatusOK, merged)
}

// ExportWord renders the posted note record as a Word document download.
func (h *Handler) ExportWord(c echo.Context) error {
	ns, err := nsParam(c)
	if err != nil {
		return err
	}
	var fields Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	data, err := ExportWord(ns, fields)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	name := "PT_Eval.docx"
	if ns == NamespaceOT {
		name = "OT_Eval.docx"
	}
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Blob(http.StatusOK, wordMIME, data)
}

// ExportPDF renders the posted note record as a PDF download.
func (h *Handler) ExportPDF(c echo.Context) error {
	ns, err := nsParam(c)
	if err != nil {
		return err
	}
	var fields Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	data, err := ExportPDF(ns, fields)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	name := "PT_Eval.pdf"
	if ns == NamespaceOT {
		name = "OT_Eval.pdf"
	}
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Blob(http.StatusOK, pdfMIME, data)
}

type generateRequest struct {
	Fields Fields `json:"fields"`
}

type generateResponse struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Generate runs one narrative generation and returns its text. The result
// field carries the legacy flattened text (including error strings) so
// existing clients keep working; the error field additionally tags
// failures for callers that want to branch.
func (h *Handler) Generate(c echo.Context) error {
	kind := Kind(c.Param("kind"))
	if _, ok := maxTokens[kind]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown narrative kind %q", c.Param("kind")))
	}
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res := h.generator.Generate(c.Request().Context(), kind, req.Fields)
	resp := generateResponse{Result: res.LegacyText()}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}

type generateEvalResponse struct {
	DiffDx  generateResponse `json:"diffdx"`
	Summary generateResponse `json:"summary"`
	Goals   generateResponse `json:"goals"`
}

// GenerateEval produces the three evaluation narratives concurrently.
func (h *Handler) GenerateEval(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out := h.generator.GenerateEval(c.Request().Context(), req.Fields)
	toResp := func(r Result) generateResponse {
		resp := generateResponse{Result: r.LegacyText()}
		if r.Err != nil {
			resp.Error = r.Err.Error()
		}
		return resp
	}
	return c.JSON(http.StatusOK, generateEvalResponse{
		DiffDx:  toResp(out.DiffDx),
		Summary: toResp(out.Summary),
		Goals:   toResp(out.Goals),
	})
}
