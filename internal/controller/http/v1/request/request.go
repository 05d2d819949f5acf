package request

import (
	"net/http"
	"reflect"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/repository/postgres/request"
	"hrportal/backend/internal/service"

	"github.com/Azure/go-autorest/autorest/date"
)

type Controller struct {
	request  DocumentRequest
	workflow Workflow
}

func NewController(request DocumentRequest, workflow Workflow) *Controller {
	return &Controller{request: request, workflow: workflow}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter request.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if requestType, ok := c.GetQueryFunc(reflect.String, "type").(*string); ok {
		filter.Type = requestType
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if employeeID, ok := c.GetQueryFunc(reflect.String, "employee_id").(*string); ok {
		filter.EmployeeID = employeeID
	}
	if from, ok := c.GetQueryFunc(reflect.String, "from").(*string); ok && from != nil {
		parsed, err := date.ParseDate(*from)
		if err != nil {
			return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
		}
		filter.From = &parsed
	}
	if to, ok := c.GetQueryFunc(reflect.String, "to").(*string); ok && to != nil {
		parsed, err := date.ParseDate(*to)
		if err != nil {
			return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
		}
		filter.To = &parsed
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.request.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.request.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// Fulfill takes multipart form data: the evidence document plus the
// optional leave range. The uploaded file is stored before the
// transaction runs; a failed transaction leaves an orphan file, not a
// half-completed request.
func (uc Controller) Fulfill(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	fulfill := request.FulfillRequest{ID: id}

	if startDate := c.PostForm("start_date"); startDate != "" {
		parsed, err := date.ParseDate(startDate)
		if err != nil {
			return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
		}
		fulfill.StartDate = &parsed
	}
	if endDate := c.PostForm("end_date"); endDate != "" {
		parsed, err := date.ParseDate(endDate)
		if err != nil {
			return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
		}
		fulfill.EndDate = &parsed
	}

	file, err := c.FormFile("file")
	if err == nil && file != nil {
		path, err := service.Upload(file, "documents")
		if err != nil {
			return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
		}
		fulfill.UploadedFilePath = &path
		fulfill.UploadedFileName = &file.Filename
	}

	response, err := uc.workflow.FulfillDocumentRequest(c.Ctx, fulfill)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// MarkCompleted is the admin shortcut: no document, no blackout.
func (uc Controller) MarkCompleted(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.request.MarkCompleted(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}
