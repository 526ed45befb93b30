// Package layerpicker provides a small net/http component that fronts
// WMS GetCapabilities lookups for form inputs. It exposes a layer
// options endpoint returning JSON select options and a service detail
// endpoint summarising the capabilities document.
//
// The handlers respond to GET and HEAD requests. Capability documents
// are cached per endpoint and version so repeated option lookups do
// not hammer the remote service.
package layerpicker
