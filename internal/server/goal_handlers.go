package server

import (
	"find/internal/models"
	"find/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGoals handles GET /api/advertisements/:id/goals
// @Summary List advertisement goals
// @Description List the donation and delivery targets of one advertisement
// @Tags goals
// @Produce json
// @Param id path int true "Advertisement ID"
// @Success 200 {object} object{goals=[]models.Goal}
// @Failure 404 {object} models.ErrorResponse
// @Router /advertisements/{id}/goals [get]
func (s *Server) GetGoals(c *fiber.Ctx) error {
	adID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	goals, err := s.goalService.ListGoals(c.Context(), adID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"goals": goals})
}

// CreateGoal handles POST /api/advertisements/:id/goals
// @Summary Add a goal
// @Description Attach a donation or delivery target to own advertisement
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Advertisement ID"
// @Param request body object{goal_type=string,target_amount=number} true "Goal"
// @Success 201 {object} object{goal=models.Goal}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /advertisements/{id}/goals [post]
func (s *Server) CreateGoal(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	adID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		GoalType     string  `json:"goal_type"`
		TargetAmount float64 `json:"target_amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	goal, err := s.goalService.CreateGoal(c.Context(), service.CreateGoalInput{
		UserID:          userID,
		AdvertisementID: adID,
		GoalType:        models.GoalType(req.GoalType),
		TargetAmount:    req.TargetAmount,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"goal": goal})
}

// ContributeToGoal handles POST /api/advertisements/:id/goals/:goalId/contribute
// @Summary Contribute to a goal
// @Description Record an anonymous contribution; no account required
// @Tags goals
// @Accept json
// @Produce json
// @Param id path int true "Advertisement ID"
// @Param goalId path int true "Goal ID"
// @Param request body object{amount=number} true "Contribution"
// @Success 200 {object} object{goal=models.Goal}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /advertisements/{id}/goals/{goalId}/contribute [post]
func (s *Server) ContributeToGoal(c *fiber.Ctx) error {
	adID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	goalID, err := s.parseID(c, "goalId")
	if err != nil {
		return nil
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	goal, err := s.goalService.Contribute(c.Context(), service.ContributeInput{
		AdvertisementID: adID,
		GoalID:          goalID,
		Amount:          req.Amount,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"goal": goal})
}
