package ecosystem

import (
	"fmt"
	"sync"

	"github.com/picoin-tech/picoin-core/pkg/types"
)

// Merchant is a shop participant pricing products in coin units.
type Merchant struct {
	Name string

	mu       sync.RWMutex
	products map[string]types.Amount
}

// NewMerchant creates a merchant with an empty price list.
func NewMerchant(name string) *Merchant {
	return &Merchant{
		Name:     name,
		products: make(map[string]types.Amount),
	}
}

// SetPrice sets the price of a product in coin base units.
func (m *Merchant) SetPrice(product string, price types.Amount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product] = price
}

// Price returns the price of a product, if listed.
func (m *Merchant) Price(product string) (types.Amount, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[product]
	return p, ok
}

// Products returns a copy of the price list.
func (m *Merchant) Products() map[string]types.Amount {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]types.Amount, len(m.products))
	for k, v := range m.products {
		out[k] = v
	}
	return out
}

// ServiceProvider is a participant billing services per hour in coin units.
type ServiceProvider struct {
	Name string

	mu       sync.RWMutex
	services map[string]types.Amount
}

// NewServiceProvider creates a provider with an empty rate card.
func NewServiceProvider(name string) *ServiceProvider {
	return &ServiceProvider{
		Name:     name,
		services: make(map[string]types.Amount),
	}
}

// SetRate sets the hourly rate for a service in coin base units.
func (p *ServiceProvider) SetRate(service string, rate types.Amount) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.services[service] = rate
}

// Rate returns the hourly rate for a service, if listed.
func (p *ServiceProvider) Rate(service string) (types.Amount, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, ok := p.services[service]
	return r, ok
}

// Services returns a copy of the rate card.
func (p *ServiceProvider) Services() map[string]types.Amount {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]types.Amount, len(p.services))
	for k, v := range p.services {
		out[k] = v
	}
	return out
}

// CalculatePayment returns the total payment for hours of a listed
// service. Fails for unknown services and on overflow.
func (p *ServiceProvider) CalculatePayment(service string, hours uint32) (types.Amount, error) {
	rate, ok := p.Rate(service)
	if !ok {
		return 0, fmt.Errorf("unknown service %q", service)
	}
	if hours == 0 {
		return 0, nil
	}
	total := rate * types.Amount(hours)
	if total/types.Amount(hours) != rate {
		return 0, fmt.Errorf("payment for %q overflows", service)
	}
	return total, nil
}
