package fetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Gateway is one upstream used to retrieve a target address.
type Gateway struct {
	Name string
	// URL builds the request address for target.
	URL func(target string) string
	// Decode extracts the target document from the gateway response body.
	Decode func(body []byte) (string, error)
}

const (
	GatewayAllOrigins = "allorigins"
	GatewayThingProxy = "thingproxy"
	GatewayCorsProxy  = "corsproxy"
	GatewayCodeTabs   = "codetabs"
	GatewayDirect     = "direct"
)

var errEmptyContents = errors.New("empty contents")

func rawBody(body []byte) (string, error) {
	return string(body), nil
}

func allOriginsBody(body []byte) (string, error) {
	var payload struct {
		Contents *string `json:"contents"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode allorigins response: %w", err)
	}
	if payload.Contents == nil || *payload.Contents == "" {
		return "", errEmptyContents
	}
	return *payload.Contents, nil
}

var knownGateways = map[string]Gateway{
	GatewayAllOrigins: {
		Name:   GatewayAllOrigins,
		URL:    func(t string) string { return "https://api.allorigins.win/get?url=" + url.QueryEscape(t) },
		Decode: allOriginsBody,
	},
	GatewayThingProxy: {
		Name:   GatewayThingProxy,
		URL:    func(t string) string { return "https://thingproxy.freeboard.io/fetch/" + t },
		Decode: rawBody,
	},
	GatewayCorsProxy: {
		Name:   GatewayCorsProxy,
		URL:    func(t string) string { return "https://corsproxy.io/?" + url.QueryEscape(t) },
		Decode: rawBody,
	},
	GatewayCodeTabs: {
		Name:   GatewayCodeTabs,
		URL:    func(t string) string { return "https://api.codetabs.com/v1/proxy?quest=" + url.QueryEscape(t) },
		Decode: rawBody,
	},
	GatewayDirect: {
		Name:   GatewayDirect,
		URL:    func(t string) string { return t },
		Decode: rawBody,
	},
}

// DefaultGatewayNames lists the public proxies tried when no gateways are configured.
func DefaultGatewayNames() []string {
	return []string{GatewayAllOrigins, GatewayThingProxy, GatewayCorsProxy, GatewayCodeTabs}
}

// Gateways resolves gateway names. An empty list resolves the defaults.
func Gateways(names []string) ([]Gateway, error) {
	if len(names) == 0 {
		names = DefaultGatewayNames()
	}

	out := make([]Gateway, 0, len(names))
	for _, name := range names {
		gw, ok := knownGateways[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown gateway %q", name)
		}
		out = append(out, gw)
	}
	return out, nil
}
