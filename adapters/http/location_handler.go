package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theafricanengineer/mozillians/internal/application/usecase/directory"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type LocationHandler struct {
	listCountryUC *directory.ListCountryUseCase
	renderer      *Renderer
	logger        logger.Logger
}

func NewLocationHandler(uc *directory.ListCountryUseCase, r *Renderer, log logger.Logger) *LocationHandler {
	return &LocationHandler{listCountryUC: uc, renderer: r, logger: log}
}

// ListCountry renders a flat listing of vouched members in a country,
// optionally narrowed by region and city.
func (h *LocationHandler) ListCountry(c *gin.Context) {
	input := directory.ListCountryInput{
		Country: c.Param("country"),
		Region:  c.Query("region"),
		City:    c.Query("city"),
	}
	output, err := h.listCountryUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	// An unknown code is tolerated; the page just has no display name.
	countryName := translator(c).CountryName(output.Country)

	h.renderer.HTML(c, http.StatusOK, "location_list.html", gin.H{
		"People":      output.People,
		"CountryName": countryName,
		"RegionName":  input.Region,
		"CityName":    input.City,
	})
}
