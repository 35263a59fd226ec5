package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const openSearchContentType = "application/opensearchdescription+xml"

const openSearchTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<OpenSearchDescription xmlns="http://a9.com/-/spec/opensearch/1.1/">
  <ShortName>Member Directory</ShortName>
  <Description>Search the member directory</Description>
  <InputEncoding>UTF-8</InputEncoding>
  <Url type="text/html" method="get" template="%s/search?q={searchTerms}"/>
</OpenSearchDescription>
`

// PluginHandler serves the static OpenSearch descriptor that lets browsers
// register the directory as a search engine.
type PluginHandler struct {
	descriptor []byte
}

func NewPluginHandler(baseURL string) *PluginHandler {
	doc := fmt.Sprintf(openSearchTemplate, strings.TrimRight(baseURL, "/"))
	return &PluginHandler{descriptor: []byte(doc)}
}

func (h *PluginHandler) SearchPlugin(c *gin.Context) {
	c.Data(http.StatusOK, openSearchContentType, h.descriptor)
}
