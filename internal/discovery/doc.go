// Package discovery locates Tilepad hosts on the local network.
//
// Tilepad advertises its plugin server over mDNS/DNS-SD as a
// "_tilepad._tcp" service. The scanner browses for those
// advertisements and yields Host records carrying the address, port,
// and TXT metadata needed to build a plugin channel endpoint. This is
// the fallback path for when no endpoint is configured or given on the
// command line; the tilepad-inspector "scan" command exposes it
// directly.
package discovery
