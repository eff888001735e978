package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/httpresp"
	ucFile "github.com/BruksfildServices01/coach-platform/internal/usecase/file"
)

type FileHandler struct {
	list     *ucFile.ListFiles
	download *ucFile.DownloadFile
	remove   *ucFile.DeleteFile
}

func NewFileHandler(list *ucFile.ListFiles, download *ucFile.DownloadFile, remove *ucFile.DeleteFile) *FileHandler {
	return &FileHandler{list: list, download: download, remove: remove}
}

func (h *FileHandler) List(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	files, err := h.list.Execute(c.Request.Context(), actor, ucFile.ListQuery{
		Directory: c.Query("directory"),
		Limit:     intQuery(c, "limit", 0),
		Offset:    intQuery(c, "offset", 0),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, files)
}

func (h *FileHandler) Download(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	out, err := h.download.Execute(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *FileHandler) Delete(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), actor, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
