package commands

import (
	"errors"

	"github.com/storeops/siteline/internal/planning/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
)

// classify maps domain sentinels onto the application error taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrPlanNotFound):
		return apperror.Wrap(apperror.KindNotFound, err, err.Error())
	case errors.Is(err, domain.ErrInvalidPlanTransition),
		errors.Is(err, domain.ErrUnknownPlanStatus),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidTarget):
		return apperror.Wrap(apperror.KindBadRequest, err, err.Error())
	default:
		return err
	}
}
