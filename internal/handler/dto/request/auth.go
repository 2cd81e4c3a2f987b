package request

import (
	"slotmarket/internal/usecase/commands"
)

type LoginRequest = commands.LoginRequest
