package repology

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/dnscache"
)

// newTransport returns the HTTP transport used when no custom client is supplied.
// When dnsRefresh is positive, host lookups go through a DNS cache which is refreshed
// in the background until the returned stop function is called.
func newTransport(dnsRefresh time.Duration) (*http.Transport, func()) {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if dnsRefresh <= 0 {
		return transport, func() {}
	}

	resolver := &dnscache.Resolver{}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(dnsRefresh)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				resolver.Refresh(true)
			}
		}
	}()

	transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		ips, err := resolver.LookupHost(ctx, host)
		if err != nil {
			return nil, err
		}
		for _, ip := range ips {
			conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
			if err == nil {
				return conn, nil
			}
		}
		return nil, fmt.Errorf("failed to dial any resolved IP for %s", host)
	}

	var once sync.Once
	return transport, func() {
		once.Do(func() { close(done) })
	}
}
