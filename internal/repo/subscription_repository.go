package repo

// SubscriptionRepository owns the set of artikuls refreshed by the sync
// cycle. Subscribe reports created=false when the artikul was already
// present; that outcome is not an error, including when it surfaces as a
// unique-constraint race at the storage layer.
type SubscriptionRepository interface {
	Subscribe(artikul string) (created bool, err error)
	GetAll() ([]string, error)
}
