package api

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/persuasion-engine/internal/engine"
	"github.com/persuasion-engine/internal/models"
	"github.com/persuasion-engine/internal/source"
	"github.com/persuasion-engine/internal/storage"
)

// presetTopic stands in for the topic when a preset configuration is validated
const presetTopic = "preset"

type templateResponse struct {
	Platform        models.Platform        `json:"platform"`
	PersuasionLevel models.PersuasionLevel `json:"persuasionLevel"`
	Text            string                 `json:"text"`
}

type presetRequest struct {
	Name            string                 `json:"name"`
	Platform        models.Platform        `json:"platform"`
	CulturalContext models.CulturalContext `json:"culturalContext"`
	PersuasionLevel models.PersuasionLevel `json:"persuasionLevel"`
	TargetEmotion   models.TargetEmotion   `json:"targetEmotion"`
	ContentType     models.ContentType     `json:"contentType"`
}

func (p presetRequest) contentRequest() models.ContentRequest {
	return models.ContentRequest{
		Platform:        p.Platform,
		Topic:           presetTopic,
		CulturalContext: p.CulturalContext,
		PersuasionLevel: p.PersuasionLevel,
		TargetEmotion:   p.TargetEmotion,
		ContentType:     p.ContentType,
	}
}

// generate handles POST /api/v1/content. With ?preset=<name> the stored
// configuration replaces every field of the body except the topic.
func (s *Server) generate(c *gin.Context) {
	var req models.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if name := c.Query("preset"); name != "" {
		if s.deps.Presets == nil {
			RespondError(c, "presets are not available", http.StatusServiceUnavailable)
			return
		}
		preset, err := s.deps.Presets.GetPreset(c.Request.Context(), name)
		if err != nil {
			s.respondPresetError(c, err)
			return
		}
		req = preset.Request(req.Topic)
	}

	content, err := s.deps.Engine.Generate(req.Topic, req)
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			s.deps.Metrics.ObserveValidationFailure(verr.FieldNames())
			RespondValidationError(c, verr, http.StatusUnprocessableEntity)
			return
		}
		s.log.Error().Err(err).Msg("Generation failed")
		RespondError(c, "generation failed", http.StatusInternalServerError)
		return
	}

	if err := sleep(c.Request.Context(), s.deps.Latency); err != nil {
		// client went away
		c.Status(http.StatusRequestTimeout)
		return
	}

	s.deps.Metrics.ObserveGeneration(req, content)
	s.log.WithPlatform(string(content.Platform)).Info().
		Str("id", content.ID).
		Int("viral_score", content.ViralScore).
		Msg("Content generated")

	c.JSON(http.StatusOK, content)
}

func (s *Server) listTemplates(c *gin.Context) {
	registry := s.deps.Engine.Registry()
	keys := registry.Keys()

	out := make([]templateResponse, 0, len(keys))
	for _, k := range keys {
		tpl, err := registry.Lookup(k.Platform, k.PersuasionLevel)
		if err != nil {
			continue
		}
		out = append(out, templateResponse{
			Platform:        k.Platform,
			PersuasionLevel: k.PersuasionLevel,
			Text:            tpl.Text,
		})
	}
	c.JSON(http.StatusOK, gin.H{"templates": out})
}

func (s *Server) listPatterns(c *gin.Context) {
	platform := models.Platform(c.Query("platform"))
	if platform != "" && !slices.Contains(models.Platforms, platform) {
		RespondError(c, "unknown platform "+string(platform), http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patterns": s.deps.Catalog.Patterns(platform)})
}

func (s *Server) getPattern(c *gin.Context) {
	p, ok := s.deps.Catalog.Pattern(c.Param("id"))
	if !ok {
		RespondError(c, "pattern not found", http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) listTriggers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"triggers": s.deps.Catalog.Triggers()})
}

func (s *Server) labAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"metrics":   s.deps.Catalog.Analytics(),
		"funnel":    s.deps.Catalog.Funnel(),
		"synthetic": true,
	})
}

func (s *Server) topicSuggestions(c *gin.Context) {
	topics, errs := s.deps.Topics.FetchAll(c.Request.Context())
	if topics == nil {
		topics = []*models.TopicSuggestion{}
	}

	failed := make([]string, 0, len(errs))
	for _, err := range errs {
		s.log.Warn().Err(err).Msg("Topic source failed")
		failed = append(failed, err.Error())

		var fetchErr *source.FetchError
		if errors.As(err, &fetchErr) {
			s.deps.Metrics.TopicFetchErrors.WithLabelValues(fetchErr.Source).Inc()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": topics,
		"errors":      failed,
	})
}

func (s *Server) featuredTopic(c *gin.Context) {
	topic := s.deps.Featured.Current()
	if topic == "" {
		RespondError(c, "no quick prompts configured", http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic})
}

// requirePresets answers 503 when no preset store is configured
func (s *Server) requirePresets(c *gin.Context) {
	if s.deps.Presets == nil {
		RespondError(c, "presets are not available", http.StatusServiceUnavailable)
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) listPresets(c *gin.Context) {
	filter := storage.DefaultPresetFilter()
	if p := c.Query("platform"); p != "" {
		platform := models.Platform(p)
		filter.Platform = &platform
	}

	presets, err := s.deps.Presets.ListPresets(c.Request.Context(), filter)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list presets")
		RespondError(c, "failed to list presets", http.StatusInternalServerError)
		return
	}
	if presets == nil {
		presets = []*models.Preset{}
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

func (s *Server) savePreset(c *gin.Context) {
	var body presetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		RespondError(c, "name is required", http.StatusBadRequest)
		return
	}

	req := body.contentRequest()
	if _, err := s.deps.Engine.Validate(req); err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			RespondValidationError(c, verr, http.StatusUnprocessableEntity)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	preset := models.PresetFromRequest(body.Name, req)
	if err := s.deps.Presets.SavePreset(c.Request.Context(), preset); err != nil {
		s.log.Error().Err(err).Str("preset", body.Name).Msg("Failed to save preset")
		RespondError(c, "failed to save preset", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, preset)
}

func (s *Server) getPreset(c *gin.Context) {
	preset, err := s.deps.Presets.GetPreset(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.respondPresetError(c, err)
		return
	}
	c.JSON(http.StatusOK, preset)
}

func (s *Server) deletePreset(c *gin.Context) {
	if err := s.deps.Presets.DeletePreset(c.Request.Context(), c.Param("name")); err != nil {
		s.respondPresetError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) respondPresetError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrPresetNotFound) {
		RespondError(c, err.Error(), http.StatusNotFound)
		return
	}
	s.log.Error().Err(err).Msg("Preset storage failed")
	RespondError(c, "preset storage failed", http.StatusInternalServerError)
}
