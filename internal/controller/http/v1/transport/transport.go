package transport

import (
	"net/http"
	"reflect"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/repository/postgres/transport"

	"github.com/Azure/go-autorest/autorest/date"
)

type Controller struct {
	transport Transport
}

func NewController(transport Transport) *Controller {
	return &Controller{transport: transport}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter transport.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
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

	list, count, err := uc.transport.GetList(c.Ctx, filter)
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

func (uc Controller) Upsert(c *web.Context) error {
	var request transport.UpsertRequest

	if err := c.BindFunc(&request, "TravelDate"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.transport.Upsert(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.transport.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
