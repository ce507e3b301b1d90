package urls

// GettingStarted is the quick start guide for connecting the inspector
// to a Tilepad host.
const GettingStarted = "https://github.com/tilepad/twitch-inspector#getting-started"

// TwitchAuthorization explains the Twitch account authorization flow
// and which scopes the plugin requests.
const TwitchAuthorization = "https://github.com/tilepad/twitch-inspector/wiki/twitch-authorization"

// Troubleshooting provides solutions to common discovery and
// connection issues.
const Troubleshooting = "https://github.com/tilepad/twitch-inspector/wiki/troubleshooting"

// TwitchCommercialDocs is Twitch's own documentation for starting
// commercials, including the accepted ad break lengths.
const TwitchCommercialDocs = "https://dev.twitch.tv/docs/api/reference/#start-commercial"
