/*
Package auth builds the links that send a visitor off to sign in with an OAuth provider
and reads what the provider hands back on /oauth/callback/*.

Exchanging the authorization code for a token is left to whatever owns user accounts;
a [Callback] only reports whether the round trip came back intact.
*/
package auth
