package postgres

var (
	ResolveIPv4       = resolveIPv4
	IsUniqueViolation = isUniqueViolation
	IsNoRows          = isNoRows
	IsInvalidText     = isInvalidText
	IsNotFound        = isNotFound
	MigrationFiles    = migrationFiles
)
