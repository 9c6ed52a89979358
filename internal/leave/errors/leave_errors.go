package leaveerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidInput,
		"leave balance is insufficient for the requested period",
		http.StatusBadRequest,
	)
	ErrExceedsMaxLeaveDays = apperror.New(
		apperror.CodeInvalidInput,
		"requested period exceeds the maximum leave days per request",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"only pending requests can be reviewed",
		http.StatusBadRequest,
	)
	ErrCounterNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"leave counter can only be applied to approved requests",
		http.StatusBadRequest,
	)
	ErrCounterAlreadyApplied = apperror.New(
		apperror.CodeConflict,
		"leave counter has already been applied",
		http.StatusConflict,
	)
)
