package controllers

import (
	"net/http"

	"github.com/Lokavishruth/siftclub/services"
	"github.com/Lokavishruth/siftclub/utils"

	"github.com/gin-gonic/gin"
)

type ScanController struct {
	scans *services.ScanService
}

func NewScanController(scans *services.ScanService) *ScanController {
	return &ScanController{scans: scans}
}

// POST /scan/url  { "url": "...", "profile": "..." }
// Resolves a product catalog URL of the form .../product/<barcode>.
func (ct *ScanController) ScanURL(c *gin.Context) {
	var req struct {
		URL     string `json:"url"`
		Profile string `json:"profile"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No URL provided."})
		return
	}

	ct.run(c, services.ScanInput{URL: req.URL, Profile: req.Profile})
}

// POST /scan  multipart form: barcode | photo | ingredients, optional profile.
// A photo is spooled to a temp file that is removed on every exit path;
// removal failures are logged, never reported.
func (ct *ScanController) Scan(c *gin.Context) {
	in := services.ScanInput{
		Barcode:     c.PostForm("barcode"),
		Ingredients: c.PostForm("ingredients"),
		Profile:     c.PostForm("profile"),
	}

	if fh, err := c.FormFile("photo"); err == nil {
		if fh.Filename == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No photo selected."})
			return
		}
		path, err := utils.SaveTempUpload(fh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo."})
			return
		}
		defer utils.RemoveTempUpload(path)

		in.PhotoPath = path
		in.PhotoName = fh.Filename
		in.PhotoMime = fh.Header.Get("Content-Type")
	}

	ct.run(c, in)
}

// POST /analyze  { "ingredients": "...", "profile": "..." } (JSON or form)
// The supplied text IS the ingredient list; catalog resolution is skipped.
func (ct *ScanController) Analyze(c *gin.Context) {
	var req struct {
		Ingredients string `json:"ingredients" form:"ingredients"`
		Profile     string `json:"profile" form:"profile"`
	}
	if err := c.ShouldBind(&req); err != nil || req.Ingredients == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No ingredients provided."})
		return
	}

	ct.run(c, services.ScanInput{Ingredients: req.Ingredients, Profile: req.Profile})
}

func (ct *ScanController) run(c *gin.Context, in services.ScanInput) {
	resp, err := ct.scans.Scan(c.Request.Context(), in)
	if err != nil {
		status, msg := services.Dispatch(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, resp)
}
