/*
Package zanapi is a client for the ZanConfig backend REST API.

# Client vs Session

A Client talks to the public account endpoints (login, register, forgot
password) and the health probe. A Session wraps a Client with the bearer
token returned by Login and is used for everything else:

	client := zanapi.NewClient("http://127.0.0.1:5000/api")

	login, err := client.Login(ctx, zanapi.LoginRequest{Username: "ops", Password: "secret"})
	if err != nil {
		return err
	}

	session := client.WithToken(login.Token)
	rows, err := session.ListClients(ctx)

# Requests

Every request is a single attempt: there is no retry, no backoff and no
client-side timeout. Cancel the context to abandon a call. Requests always
carry Content-Type application/json and GET requests never carry a body.

# Errors

  - ErrNetwork wraps transport failures (connection refused, context done).
  - *APIError is returned for non-2xx answers, malformed JSON and envelopes
    with "ok": false. Its Message is the backend's "error" string when one
    was sent, "Request failed" otherwise.

Message maps any error to the text a screen should show:

	if err != nil {
		flash := zanapi.Message(err, "Failed to load clients")
	}
*/
package zanapi
