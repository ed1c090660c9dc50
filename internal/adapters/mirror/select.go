package mirror

import (
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/providers"
	typesenseclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/typesense"
)

// Clients holds the connected backends a mirror can be built on.
type Clients struct {
	Firestore *firestore.Client
	Typesense *typesenseclient.Client
	Redis     *redis.Client
}

// Select builds the mirror for the named backend. Backend "none" returns a
// nil store and no error.
func Select(backend, collection string, clients Clients) (providers.MirrorStore, error) {
	switch backend {
	case "", "none":
		return nil, nil
	case "firestore":
		if clients.Firestore == nil {
			return nil, fmt.Errorf("firestore mirror requires a firestore client")
		}
		return NewFirestoreStore(clients.Firestore, collection), nil
	case "typesense":
		if clients.Typesense == nil {
			return nil, fmt.Errorf("typesense mirror requires a typesense client")
		}
		return NewTypesenseStore(clients.Typesense, collection), nil
	case "redis":
		if clients.Redis == nil {
			return nil, fmt.Errorf("redis mirror requires a redis client")
		}
		return NewRedisStore(clients.Redis, collection+":"), nil
	default:
		return nil, fmt.Errorf("unknown mirror backend %q", backend)
	}
}
