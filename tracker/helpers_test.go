package tracker

import (
	"errors"

	"github.com/rpupo63/solar-ops-backend/errs"
)

func asApiErr(err error, target **errs.ApiErr) bool {
	return errors.As(err, target)
}
