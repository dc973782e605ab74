package response

// Шаблоны ошибок. Копируются по значению, Details заполняется на месте.
var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  StatusError,
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	// текст совпадает с тем, что показывает редактор
	ErrSlugExists = ErrorResponse{
		Status: StatusError,
		Error:  "A page with this name or slug already exists.",
	}

	ErrVersionConflict = ErrorResponse{
		Status:  StatusError,
		Error:   "version_conflict",
		Details: "The page was changed by someone else. Reload it and save again.",
	}

	ErrNotFound = ErrorResponse{
		Status: StatusError,
		Error:  "not_found",
	}

	ErrInternal = ErrorResponse{
		Status:  StatusError,
		Error:   "internal_error",
		Details: "Internal server error",
	}
)
