package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kanban-api/broadcast"
)

// streamBoard subscribes the connection to the board's group and relays
// board-updated events over SSE. A viewer receiving any event re-fetches
// the board's full list/task state; the payload alone is not guaranteed
// to be applicable incrementally.
func streamBoard(auth Authenticator, broker *broadcast.Broker) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if token := c.QueryParam("token"); authHeader == "" && token != "" {
			authHeader = "Bearer " + token
		}
		if _, err := auth.UserIDFromAuthHeader(authHeader); err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		boardID := c.Param("boardId")

		c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
		c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
		c.Response().Header().Set("X-Accel-Buffering", "no")
		flusher, ok := c.Response().Writer.(http.Flusher)
		if !ok {
			return c.String(http.StatusInternalServerError, "stream unsupported")
		}

		ctx := c.Request().Context()
		ch := broker.Subscribe(boardID)
		defer broker.Unsubscribe(boardID, ch)

		if _, err := c.Response().Write([]byte(": subscribed\n\n")); err != nil {
			return nil
		}
		flusher.Flush()

		for {
			select {
			case <-ctx.Done():
				return nil
			case data := <-ch:
				if _, err := c.Response().Write([]byte("event: board-updated\ndata: ")); err != nil {
					return nil
				}
				if _, err := c.Response().Write(data); err != nil {
					return nil
				}
				if _, err := c.Response().Write([]byte("\n\n")); err != nil {
					return nil
				}
				flusher.Flush()
			}
		}
	}
}
