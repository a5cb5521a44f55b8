package commands

import (
	"errors"

	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
)

// classify maps domain sentinels onto the application error taxonomy so
// the transport layer can choose a status code. Already-classified and
// unknown errors pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrLocationNotFound),
		errors.Is(err, domain.ErrFollowUpNotFound):
		return apperror.Wrap(apperror.KindNotFound, err, err.Error())
	case errors.Is(err, domain.ErrLocationContracted):
		return apperror.Wrap(apperror.KindForbidden, err, err.Error())
	case errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, domain.ErrUnknownStatus),
		errors.Is(err, domain.ErrUnknownPriority),
		errors.Is(err, domain.ErrFollowUpCompleted),
		errors.Is(err, domain.ErrEmptyCode),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyAddress):
		return apperror.Wrap(apperror.KindBadRequest, err, err.Error())
	default:
		return err
	}
}
