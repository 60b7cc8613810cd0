package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/restaurant-ops/labor-compliance/backend/internal/compliance"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/restaurant-ops/labor-compliance/backend/internal/report"
	"github.com/restaurant-ops/labor-compliance/backend/internal/utils"
	"golang.org/x/sync/errgroup"
)

func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "Règles de conformité en vigueur", h.rules)
}

// severityFilter 解析 ?severity= 参数，参数非法时已经写好了响应
func (h *Handler) severityFilter(w http.ResponseWriter, r *http.Request) (domain.Severity, bool) {
	severity := r.URL.Query().Get("severity")
	if err := h.validate.Var(severity, "omitempty,oneof=critical warning info"); err != nil {
		h.errorResponse(w, r, "Le paramètre severity doit valoir critical, warning ou info")
		return "", false
	}
	return domain.Severity(severity), true
}

// 过滤只影响返回的违规列表，合规结论始终基于全部违规
func filterReport(rep domain.ComplianceReport, severity domain.Severity) domain.ComplianceReport {
	if severity != "" {
		rep.Violations = compliance.FilterBySeverity(rep.Violations, severity)
	}
	return rep
}

func (h *Handler) CheckWeekSchedule(w http.ResponseWriter, r *http.Request) {
	var req domain.WeekSchedulePayload
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	severity, ok := h.severityFilter(w, r)
	if !ok {
		return
	}

	employees, shifts, weekStart, err := utils.ParseWeekSchedule(&req, time.UTC)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	rep := compliance.New(h.rules, employees, shifts, weekStart, compliance.WithLogger(slog.Default())).Report()

	h.successResponse(w, r, "Contrôle de conformité effectué", filterReport(rep, severity))
}

// weekReport 优先使用缓存，refresh 为 true 时强制重新计算
func (h *Handler) weekReport(ctx context.Context, restaurant *domain.Restaurant, weekStart time.Time, refresh bool) (*domain.ComplianceReport, error) {
	key := reportCacheKey(restaurant.ID, weekStart, h.rules.Version)
	if !refresh {
		if cached, ok := h.getCachedReport(ctx, key); ok {
			return cached, nil
		}
	}

	var (
		employees []domain.Employee
		shifts    []domain.Shift
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = h.repository.GetEmployeesByRestaurantID(gctx, restaurant.ID)
		return err
	})
	g.Go(func() error {
		var err error
		shifts, err = h.repository.GetShiftsByWeek(gctx, restaurant.ID, weekStart)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger := slog.Default().With("restaurantID", restaurant.ID, "weekStart", weekStart.Format(time.DateOnly))
	rep := compliance.New(h.rules, employees, shifts, weekStart, compliance.WithLogger(logger)).Report()
	rep.RestaurantID = restaurant.ID

	h.setCachedReport(ctx, key, &rep)

	return &rep, nil
}

// requestedWeek 解析路径中的周一日期，参数非法时已经写好了响应
func (h *Handler) requestedWeek(w http.ResponseWriter, r *http.Request, restaurant *domain.Restaurant) (time.Time, bool) {
	weekStart, err := utils.ParseWeekStart(chi.URLParam(r, "weekStart"), restaurantLocation(restaurant))
	if err != nil {
		h.badRequest(w, r, err)
		return time.Time{}, false
	}
	return weekStart, true
}

func (h *Handler) GetWeekCompliance(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	weekStart, ok := h.requestedWeek(w, r, restaurant)
	if !ok {
		return
	}

	severity, ok := h.severityFilter(w, r)
	if !ok {
		return
	}

	rep, err := h.weekReport(r.Context(), restaurant, weekStart, r.URL.Query().Get("refresh") == "true")
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Contrôle de conformité effectué", filterReport(*rep, severity))
}

func (h *Handler) GetWeekComplianceReport(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	weekStart, ok := h.requestedWeek(w, r, restaurant)
	if !ok {
		return
	}

	rep, err := h.weekReport(r.Context(), restaurant, weekStart, false)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 根据扩展名选择导出格式
	render, contentType, ext := report.RenderCompliancePDF, "application/pdf", "pdf"
	if strings.HasSuffix(r.URL.Path, ".xlsx") {
		render, contentType, ext = report.RenderComplianceXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	}

	data, err := render(rep, restaurant.Name)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	filename := fmt.Sprintf("conformite-%s-%s.%s", restaurant.ID, rep.WeekStartDate, ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("发送合规报告失败", "restaurantID", restaurant.ID, "format", ext, "error", err)
	}
}

func (h *Handler) NotifyCriticalViolations(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	weekStart, ok := h.requestedWeek(w, r, restaurant)
	if !ok {
		return
	}

	rep, err := h.weekReport(r.Context(), restaurant, weekStart, true)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	msg, ok := criticalViolationsMail(restaurant, rep)
	if !ok {
		h.successResponse(w, r, "Aucune violation critique, aucune notification envoyée", nil)
		return
	}

	// 发送邮件到消息队列中
	if err := h.alerts.Publish(r.Context(), msg); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	data := msg.Data.(domain.CriticalViolationsMailData)
	h.successResponse(w, r, "Notification envoyée au responsable", map[string]any{
		"to":         msg.To,
		"violations": len(data.Violations),
	})
}
