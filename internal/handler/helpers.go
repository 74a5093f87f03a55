package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/httputil"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// resolveIdentity loads the caller's identity snapshot for this request.
// Resolution is per-request; nothing is cached between calls.
func resolveIdentity(r *http.Request, svc services.IdentityService) (rbac.Identity, error) {
	return svc.Resolve(r.Context(), httputil.GetUserID(r))
}

// resolveActor bundles the identity snapshot with the token's profile claims
// for operations that may create the caller's mirror record.
func resolveActor(r *http.Request, svc services.IdentityService) (services.Actor, error) {
	identity, err := resolveIdentity(r, svc)
	if err != nil {
		return services.Actor{}, err
	}
	return services.Actor{
		Identity: identity,
		Email:    httputil.GetUserEmail(r),
		Name:     httputil.GetUserName(r),
	}, nil
}

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var (
		deniedErr   *domain.AccessDeniedError
		quotaErr    *domain.QuotaExceededError
		conflictErr *domain.ConflictError
	)

	switch {
	case errors.As(err, &deniedErr):
		extras := map[string]interface{}{"reason": string(deniedErr.Reason)}
		if len(deniedErr.Missing) > 0 {
			missing := make([]string, len(deniedErr.Missing))
			for i, p := range deniedErr.Missing {
				missing[i] = string(p)
			}
			extras["missing_permissions"] = missing
		}
		httputil.RespondErrorWithExtras(w, deniedErr.StatusCode(), deniedErr.Error(), extras)
	case errors.As(err, &quotaErr):
		httputil.RespondErrorWithExtras(w, quotaErr.StatusCode(), quotaErr.Error(), map[string]interface{}{
			"resource": quotaErr.Resource,
			"current":  quotaErr.Current,
			"limit":    quotaErr.Limit,
		})
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrSelfModification):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrLastOwner):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInviteExpired):
		httputil.RespondError(w, http.StatusGone, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseUUID validates that a path parameter is a well-formed UUID
func parseUUID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}
