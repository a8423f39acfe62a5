package engine

import (
	"context"
	"fmt"

	"github.com/miekg/dns"
)

// DefaultResolver is used when the CLI did not override --resolver.
const DefaultResolver = "8.8.8.8:53"

// DNSResolveFunc resolves one fully-qualified domain and reports whether it
// resolved at all (the "boundary" the dns Classifier checks) plus the
// tagged address list.
type DNSResolveFunc func(ctx context.Context, fqdn string) ([]Address, bool, error)

// NewDNSResolver builds a DNSResolveFunc that issues A and AAAA queries
// concurrently against resolverAddr using miekg/dns. Unlike a
// wildcard-detecting resolver pool, this issues one exchange per record
// type per probe with no wildcard filtering.
func NewDNSResolver(resolverAddr string) DNSResolveFunc {
	if resolverAddr == "" {
		resolverAddr = DefaultResolver
	}

	client := &dns.Client{}

	return func(ctx context.Context, fqdn string) ([]Address, bool, error) {
		type outcome struct {
			addrs []Address
			err   error
		}

		resultsCh := make(chan outcome, 2)
		for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
			qtype := qtype
			go func() {
				addrs, err := exchange(ctx, client, resolverAddr, fqdn, qtype)
				resultsCh <- outcome{addrs: addrs, err: err}
			}()
		}

		var addrs []Address
		var lastErr error
		for i := 0; i < 2; i++ {
			o := <-resultsCh
			if o.err != nil {
				lastErr = o.err
				continue
			}
			addrs = append(addrs, o.addrs...)
		}

		if len(addrs) == 0 && lastErr != nil {
			return nil, false, lastErr
		}
		return addrs, len(addrs) > 0, nil
	}
}

func exchange(ctx context.Context, client *dns.Client, resolverAddr, fqdn string, qtype uint16) ([]Address, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(fqdn, qtype)
	msg.RecursionDesired = true

	resp, _, err := client.ExchangeContext(ctx, msg, resolverAddr)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", fqdn, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, nil
	}

	var addrs []Address
	for _, rr := range resp.Answer {
		switch v := rr.(type) {
		case *dns.A:
			addrs = append(addrs, Address{IP: v.A.String(), Family: "IPv4"})
		case *dns.AAAA:
			addrs = append(addrs, Address{IP: v.AAAA.String(), Family: "IPv6"})
		}
	}
	return addrs, nil
}
