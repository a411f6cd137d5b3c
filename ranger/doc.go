/*
Package ranger initializes and manages a personachat app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type,
constructed with [New] and any [RangerOption] overriding a default.
[New] mounts every view on the Ranger's router,
so its routes are ready once it returns.

[*Ranger.Guide] begins the web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000).
Stop that web server with [*Ranger.Shutdown],
by cancelling the context passed to [WithContext],
or by sending a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a personachat app through environment variables
and by passing options to [New].
For environment variables, required values can be discovered by inspecting the errors [New] returns.

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - APP_TITLE: a short title for the application; default: PersonaChat
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONTACT_US_EMAIL: the email address end users can contact us at; default: hello@xyplanningnetwork.com
  - ENVIRONMENT: the environment the application is running in; cf. [personachat.Environment]
  - LOG_JSON: whether to log JSON in DEVELOPMENT; other environments always log JSON
  - LOG_LEVEL: the level at which to begin logging; default: INFO
  - MAINTENANCE_MODE: whether every page renders the maintenance page
  - OAUTH_CLIENT_ID: the Google OAuth client ID; sign in is disabled when unset
  - OAUTH_CLIENT_SECRET: the Google OAuth client secret
  - PORT: the port the application should listen on; default: :3000
  - RATE_LIMIT: requests per second allowed from one client address; default: 10
  - RATE_BURST: requests allowed from one client address at once; default: 30
  - REDIS_URL: the host:port of a Redis server to store sessions in; sessions live in cookies when unset
  - REDIS_PASSWORD: the password for authenticating to Redis
  - SENTRY_DSN: the DSN errors are reported to
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - TEMPLATE_DIR: a directory whose tmpl/ templates shadow the embedded view templates, e.g. view

In DEMO, DEVELOPMENT, and TESTING, unset session keys are generated on start up,
so sessions do not survive a restart.
*/
package ranger
