package api

import "slotmarket/internal/pkg/errs"

var errUnauthenticated = errs.New("user not authenticated")
