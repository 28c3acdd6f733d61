// Package client is a small HTTP client for the weekplan task API.
//
//	c := client.New(os.Getenv("WEEKPLAN_URL"))
//	list, err := c.ListTasks(ctx, "Понедельник")
//
// Non-2xx responses come back as *APIError carrying the status code and
// the server's error message.
package client
