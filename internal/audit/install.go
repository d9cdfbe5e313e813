package audit

import (
	"errors"

	"notas/internal/models"
	"notas/internal/repository"
)

var ErrAuditTableMissing = errors.New("audit_logs table does not exist")

// Install registers the interceptor on the store. It refuses to start when the
// audit table is missing, so a misconfigured deployment fails at boot rather
// than on its first write.
func Install(store *repository.Store, interceptor *Interceptor) error {
	if !store.DB().Migrator().HasTable(&models.AuditLog{}) {
		return ErrAuditTableMissing
	}
	return store.Use(interceptor)
}
