package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"kanban-api/broadcast"
	"kanban-api/domain"
)

const requestBodyMaxSize = 1 << 20

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, svc Service, auth Authenticator, broker *broadcast.Broker, logger *log.Logger) {
	e.GET("/healthz", healthz())

	e.GET("/api/boards", getBoards(svc, auth))
	e.POST("/api/boards", createBoard(svc, auth))
	e.GET("/api/boards/:boardId/lists", getLists(svc, auth))
	e.POST("/api/boards/:boardId/lists", createList(svc, auth))
	e.PUT("/api/boards/:boardId/lists/:id", updateList(svc, auth))
	e.DELETE("/api/boards/:boardId/lists/:id", deleteList(svc, auth))
	e.GET("/api/boards/:boardId/activity", getActivity(svc, auth))
	e.GET("/api/boards/:boardId/stream", streamBoard(auth, broker))
	e.POST("/api/lists/:listId/tasks", createTask(svc, auth))
	e.PUT("/api/tasks/:id", updateTask(svc, auth, logger))
	e.DELETE("/api/tasks/:id", deleteTask(svc, auth))
	e.GET("/api/users", getUsers(svc, auth))
}

type messageResponse struct {
	Message string `json:"message"`
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getBoards(svc Service, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := authenticate(c, auth); err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		page, _ := strconv.Atoi(c.QueryParam("page"))
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		boards, err := svc.ListBoards(c.Request().Context(), page, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, boards)
	}
}

func createBoard(svc Service, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticate(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var body struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if err := decodeBody(c, &body); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		board, err := svc.CreateBoard(c.Request().Context(), domain.Board{
			Title:       body.Title,
			Description: body.Description,
			OwnerID:     userID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, board)
	}
}

func getLists(svc Service, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := authenticate(c, auth); err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		lists, err := svc.BoardLists(c.Request().Context(), c.Param("boardId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, lists)
	}
}

func createList(svc Service, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticate(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var body struct {
			Title    string `json:"title"`
			Position int    `json:"position"`
		}
		if err := decodeBody(c, &body); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		list, err := svc.CreateList(c.Request().Context(), userID, domain.List{
			BoardID:  c.Param("boardId"),
			Title:    body.Title,
			Position: body.Position,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

func updateList(svc Service, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticate(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var patch domain.ListPatch
		if err := decodeBody(c, &patch); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		list, err := svc.UpdateList(c.Request().Context(), userID, c.Param("id"), patch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

func deleteList(svc Service, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticate(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		if err := svc.DeleteList(c.Request().Context(), userID, c.Param("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, messageResponse{Message: "List deleted"})
	}
}

func getActivity(svc Service, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := authenticate(c, auth); err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		entries := svc.BoardActivity(c.Request().Context(), c.Param("boardId"))
		return c.JSON(http.StatusOK, entries)
	}
}

func createTask(svc Service, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticate(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var body struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Position    int    `json:"position"`
			AssigneeID  string `json:"assigneeId"`
		}
		if err := decodeBody(c, &body); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		task, err := svc.CreateTask(c.Request().Context(), userID, domain.Task{
			ListID:      c.Param("listId"),
			Title:       body.Title,
			Description: body.Description,
			Position:    body.Position,
			AssigneeID:  body.AssigneeID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func updateTask(svc Service, auth Authenticator, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newMutationMetrics(ctx, logger, "/api/tasks/:id")
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		authStart := time.Now()
		userID, authErr := authenticate(c, auth)
		metrics.ObserveAuth(time.Since(authStart))
		if authErr != nil {
			metrics.SetErrorStage("auth")
			err = c.String(http.StatusUnauthorized, authErr.Error())
			return err
		}

		var patch domain.TaskPatch
		if decodeErr := decodeBody(c, &patch); decodeErr != nil {
			metrics.SetErrorStage("decode")
			err = c.String(http.StatusBadRequest, "invalid body")
			return err
		}

		applyStart := time.Now()
		task, applyErr := svc.UpdateTask(ctx, userID, c.Param("id"), patch)
		metrics.ObserveApply(time.Since(applyStart))
		if applyErr != nil {
			metrics.SetErrorStage("apply")
			err = writeServiceError(c, applyErr)
			return err
		}
		err = c.JSON(http.StatusOK, task)
		return err
	}
}

func deleteTask(svc Service, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticate(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		if err := svc.DeleteTask(c.Request().Context(), userID, c.Param("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted"})
	}
}

func getUsers(svc Service, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := authenticate(c, auth); err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		users, err := svc.Users(c.Request().Context())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, users)
	}
}

func authenticate(c echo.Context, auth Authenticator) (string, error) {
	return auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
}

func decodeBody(c echo.Context, dst any) error {
	lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeServiceError(c echo.Context, err error) error {
	var verr domain.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: verr.Error()})
	}
	var nf domain.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, messageResponse{Message: nf.Error()})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Server error"})
}
