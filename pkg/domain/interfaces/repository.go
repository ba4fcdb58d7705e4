package interfaces

// Repository bundles one table-scoped repository per logical table. The
// backing store offers equality-filtered row operations only: no joins and
// no multi-statement transactions. All parent/child traversal happens in the
// layers above via repeated keyed lookups.
type Repository interface {
	Incident() IncidentRepository
	AssignedUser() AssignedUserRepository
	AffectedSystem() AffectedSystemRepository
	TimelineEvent() TimelineEventRepository
	CredentialLeak() CredentialLeakRepository
	LeakLog() LeakLogRepository
	CustomType() CustomTypeRepository

	Close() error
}
