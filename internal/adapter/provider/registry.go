// Package provider resolves primary wallets and ships a config-driven provider.
package provider

import (
	"fmt"
	"sort"
	"sync"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
)

// Registry implements ports.ProviderRegistry.
type Registry struct {
	mu        sync.RWMutex
	providers map[domain.PoolKey]ports.PrimaryWalletProvider
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[domain.PoolKey]ports.PrimaryWalletProvider)}
}

// Register adds a provider. Each (blockchain, name) pair may be registered once.
func (r *Registry) Register(p ports.PrimaryWalletProvider) error {
	key := domain.PoolKey{Blockchain: p.Blockchain(), PrimaryWalletName: p.Name()}
	if key.Blockchain == "" || key.PrimaryWalletName == "" {
		return fmt.Errorf("primary wallet provider needs a blockchain and a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[key]; ok {
		return fmt.Errorf("primary wallet %s registered twice", key)
	}
	r.providers[key] = p
	return nil
}

func (r *Registry) Get(blockchain, name string) (ports.PrimaryWalletProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[domain.PoolKey{Blockchain: blockchain, PrimaryWalletName: name}]
	return p, ok
}

// List returns every provider ordered by blockchain, then name.
func (r *Registry) List() []ports.PrimaryWalletProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]domain.PoolKey, 0, len(r.providers))
	for k := range r.providers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	out := make([]ports.PrimaryWalletProvider, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.providers[k])
	}
	return out
}
