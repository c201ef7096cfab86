package http

import (
	"net/http"

	"telemed-scheduling/internal/delivery/http/handler"
	"telemed-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	timeSlotHandler     *handler.TimeSlotHandler
	bookingHandler      *handler.BookingHandler
	consultationHandler *handler.ConsultationHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	timeSlotHandler *handler.TimeSlotHandler,
	bookingHandler *handler.BookingHandler,
	consultationHandler *handler.ConsultationHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		timeSlotHandler:     timeSlotHandler,
		bookingHandler:      bookingHandler,
		consultationHandler: consultationHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Browse routes (any authenticated user)
	browse := api.PathPrefix("").Subrouter()
	browse.Use(r.authMiddleware.Authenticate)
	browse.HandleFunc("/doctors", r.doctorHandler.GetAvailableDoctors).Methods(http.MethodGet)
	browse.HandleFunc("/slots/available", r.timeSlotHandler.ListAvailable).Methods(http.MethodGet)
	browse.HandleFunc("/slots/summary", r.timeSlotHandler.AvailabilitySummary).Methods(http.MethodGet)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/profile", r.doctorHandler.GetMyProfile).Methods(http.MethodGet)
	doctor.HandleFunc("/profile", r.doctorHandler.UpdateMyProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/slots", r.timeSlotHandler.CreateSlot).Methods(http.MethodPost)
	doctor.HandleFunc("/slots", r.timeSlotHandler.GetMySlots).Methods(http.MethodGet)
	doctor.HandleFunc("/slots/{id}/blocked", r.timeSlotHandler.SetBlocked).Methods(http.MethodPut)
	doctor.HandleFunc("/slots/{id}", r.timeSlotHandler.DeleteSlot).Methods(http.MethodDelete)
	doctor.HandleFunc("/appointments", r.bookingHandler.GetDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/cancel", r.bookingHandler.CancelAppointment).Methods(http.MethodPost)
	doctor.HandleFunc("/requests", r.consultationHandler.GetDoctorRequests).Methods(http.MethodGet)
	doctor.HandleFunc("/requests/{id}/respond", r.consultationHandler.Respond).Methods(http.MethodPost)
	doctor.HandleFunc("/requests/{id}/complete", r.consultationHandler.Complete).Methods(http.MethodPost)
	doctor.HandleFunc("/requests/{id}/prescription", r.consultationHandler.GetPrescriptionByRequest).Methods(http.MethodGet)

	// Patient routes (protected - patient only)
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/doctors/match", r.doctorHandler.MatchDoctors).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.bookingHandler.BookSlot).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.bookingHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}/cancel", r.bookingHandler.CancelAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/requests", r.consultationHandler.SubmitRequest).Methods(http.MethodPost)
	patient.HandleFunc("/requests", r.consultationHandler.GetMyRequests).Methods(http.MethodGet)
	patient.HandleFunc("/prescriptions", r.consultationHandler.GetMyPrescriptions).Methods(http.MethodGet)
	patient.HandleFunc("/requests/{id}/prescription", r.consultationHandler.GetPrescriptionByRequest).Methods(http.MethodGet)

	// Audit routes (protected - admin or support)
	audit := api.PathPrefix("/audit-logs").Subrouter()
	audit.Use(r.authMiddleware.Authenticate)
	audit.Use(middleware.RequireAdminOrSupport)
	audit.HandleFunc("", r.auditLogHandler.GetAll).Methods(http.MethodGet)
	audit.HandleFunc("/{id}", r.auditLogHandler.GetByID).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
