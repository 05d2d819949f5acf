package attendance

import (
	"net/http"
	"reflect"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/repository/postgres/attendance"
	"hrportal/backend/internal/workflow"
)

type Controller struct {
	attendance Attendance
	workflow   Workflow
}

func NewController(attendance Attendance, workflow Workflow) *Controller {
	return &Controller{attendance: attendance, workflow: workflow}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter attendance.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if reason, ok := c.GetQueryFunc(reflect.String, "reason").(*string); ok {
		filter.Reason = reason
	}
	if resolved, ok := c.GetQueryFunc(reflect.Bool, "resolved").(*bool); ok {
		filter.Resolved = resolved
	}
	if employeeID, ok := c.GetQueryFunc(reflect.String, "employee_id").(*string); ok {
		filter.EmployeeID = employeeID
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetList(c.Ctx, filter)
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

	response, err := uc.attendance.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request workflow.SubmitAbsenceRequest

	if err := c.BindFunc(&request, "EmployeeID", "Reason"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.workflow.SubmitAbsence(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.attendance.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
