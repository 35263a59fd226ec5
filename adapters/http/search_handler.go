package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	searchUC "github.com/theafricanengineer/mozillians/internal/application/usecase/search"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type SearchHandler struct {
	searchUseCase *searchUC.SearchUseCase
	renderer      *Renderer
	logger        logger.Logger
}

func NewSearchHandler(uc *searchUC.SearchUseCase, r *Renderer, log logger.Logger) *SearchHandler {
	return &SearchHandler{searchUseCase: uc, renderer: r, logger: log}
}

func (h *SearchHandler) Search(c *gin.Context) {
	var form SearchForm
	if err := c.ShouldBindQuery(&form); err != nil {
		// Bad search input degrades to an empty result page, never an
		// error.
		h.renderResults(c, form, nil)
		return
	}

	input := searchUC.SearchInput{
		Query:             form.Query,
		IncludeNonVouched: form.IncludeNonVouched,
		Limit:             form.Limit,
		Page:              c.Query("page"),
	}
	output, err := h.searchUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	// A single unambiguous profile match skips the listing entirely.
	if output.SingleMatch != nil {
		c.Redirect(http.StatusSeeOther, "/u/"+output.SingleMatch.Username)
		return
	}

	h.renderResults(c, form, output)
}

func (h *SearchHandler) renderResults(c *gin.Context, form SearchForm, output *searchUC.SearchOutput) {
	data := gin.H{
		"Form":           form,
		"ShowPagination": false,
		"NumPages":       0,
	}
	if output != nil {
		data["People"] = output.People
		data["Groups"] = output.Groups
		data["CuratedGroups"] = output.CuratedGroups
		data["Page"] = output.Page
		data["NumPages"] = output.Page.NumPages
		data["ShowPagination"] = output.ShowPagination
	}

	template := "search.html"
	if isAJAX(c) {
		template = "search_ajax.html"
	}
	h.renderer.HTML(c, http.StatusOK, template, data)
}
