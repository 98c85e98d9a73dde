package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/valpere/llmtranslate/internal"
)

const (
	detailInvalidBody       = "invalid request body"
	detailTranslationFailed = "Translation failed"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

func detail(c echo.Context, status int, message string) error {
	return c.JSON(status, detailResponse{Detail: message})
}

func (s *Server) handleTranslate(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		s.logger.Warn().Err(err).Msg("read request body failed")
		return detail(c, http.StatusBadRequest, detailInvalidBody)
	}

	req, err := decodeTranslateRequest(body)
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejected translate request body")
		return detail(c, http.StatusBadRequest, detailInvalidBody)
	}

	req, err = req.Normalize()
	if err != nil {
		var invalid *internal.InvalidRequestError
		if errors.As(err, &invalid) {
			return detail(c, http.StatusBadRequest, invalid.Detail)
		}
		return detail(c, http.StatusBadRequest, detailInvalidBody)
	}

	result, err := s.translator.Translate(c.Request().Context(), req.Text, req.SourceLang, req.TargetLangs)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("source_lang", req.SourceLang).
			Strs("target_langs", req.TargetLangs).
			Msg("translation failed")
		return detail(c, http.StatusInternalServerError, detailTranslationFailed)
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:   "ok",
		Provider: s.translator.ProviderName(),
	})
}
