package dto

import "learnobs/internal/modules/messages/domain"

type (
	Message = domain.Message
	Thread  = domain.Thread
)
