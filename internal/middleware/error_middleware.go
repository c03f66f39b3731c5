package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/logger"
)

// HandleAPIError maps a service error to the envelope with status and code.
// A CustomError's message is surfaced to the client verbatim; otherwise the
// sentinel's default message is used.
func HandleAPIError(c *gin.Context, err error) {
	status, code, message := classify(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
	}

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, message))
}

func classify(err error) (int, dto.ErrorCode, string) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrSectionNotFound),
		errors.Is(err, apperrors.ErrLessonNotFound),
		errors.Is(err, apperrors.ErrPostNotFound),
		errors.Is(err, apperrors.ErrCommentNotFound),
		errors.Is(err, apperrors.ErrFriendshipNotFound),
		errors.Is(err, apperrors.ErrRoomNotFound),
		errors.Is(err, apperrors.ErrMessageNotFound):
		return http.StatusNotFound, dto.CodeNotFound, "요청한 리소스를 찾을 수 없습니다."

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.CodeInvalidCredentials, "아이디 또는 비밀번호가 올바르지 않습니다."

	case errors.Is(err, apperrors.ErrTokenRequired):
		return http.StatusUnauthorized, dto.CodeAuthRequired, "인증 토큰이 필요합니다."

	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.CodeAuthExpired, "토큰이 만료되었습니다. 다시 로그인해 주세요."

	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.CodeAuthInvalid, "유효하지 않은 토큰입니다."

	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrNotRoomMember):
		return http.StatusForbidden, dto.CodePermissionDenied, "접근 권한이 없습니다."

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrSelfFriendship):
		return http.StatusBadRequest, dto.CodeValidationError, "요청 값이 올바르지 않습니다."

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrUsernameAlreadyExists),
		errors.Is(err, apperrors.ErrTagAlreadyExists),
		errors.Is(err, apperrors.ErrFriendshipExists):
		return http.StatusConflict, dto.CodeConflict, "이미 존재하는 리소스입니다."

	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, dto.CodeRateLimited, "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요."

	default:
		return http.StatusInternalServerError, dto.CodeServerError, "서버 오류가 발생했습니다."
	}
}

// HandleValidationError answers a request-binding failure with a 400
// envelope.
func HandleValidationError(c *gin.Context, err error) {
	logger.Debug().Err(err).Str("path", c.FullPath()).Msg("Request binding failed")
	c.AbortWithStatusJSON(http.StatusBadRequest,
		dto.NewErrorResponse(dto.CodeValidationError, "요청 값이 올바르지 않습니다."))
}
