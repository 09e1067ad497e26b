package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/AlexSaifo/school-management-system-sub002/config"
	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/handlers"
	"github.com/AlexSaifo/school-management-system-sub002/middlewares"
	"github.com/AlexSaifo/school-management-system-sub002/progression"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	std := handlers.NewStudentHandler()
	tch := handlers.NewTeacherHandler()
	room := handlers.NewClassRoomHandler()
	grade := handlers.NewGradeLevelHandler()
	year := handlers.NewAcademicYearHandler()
	subj := handlers.NewSubjectHandler()
	tt := handlers.NewTimetableHandler()
	att := handlers.NewAttendanceHandler()
	chat := handlers.NewChatHandler()
	notif := handlers.NewNotificationHandler()
	exp := handlers.NewExportHandler()
	prog := handlers.NewProgressionHandler(progression.NewService(database.DB))

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/login", auth.Login)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Any authenticated user =====
	me := e.Group("", authMW)
	me.PUT("/profile/password", auth.ChangePassword)
	me.GET("/notifications", notif.List)
	me.GET("/notifications/unread-count", notif.UnreadCount)
	me.POST("/notifications/:id/read", notif.MarkRead)
	me.POST("/chat/messages", chat.Send)
	me.GET("/chat/messages", chat.Conversation)
	me.POST("/chat/messages/:public_id/read", chat.MarkRead)

	// ===== Admin =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))

	admin.GET("/students", std.List)
	admin.GET("/students/export", exp.Students)
	admin.GET("/students/:id", std.Get)
	admin.POST("/students", std.Create)
	admin.PUT("/students/:id", std.Update)
	admin.DELETE("/students/:id", std.Delete)

	admin.GET("/teachers", tch.List)
	admin.POST("/teachers", tch.Create)
	admin.PUT("/teachers/:id", tch.Update)
	admin.DELETE("/teachers/:id", tch.Delete)

	admin.GET("/classrooms", room.List)
	admin.GET("/classrooms/:id", room.Get)
	admin.POST("/classrooms", room.Create)
	admin.PUT("/classrooms/:id", room.Update)
	admin.DELETE("/classrooms/:id", room.Delete)

	admin.GET("/grade-levels", grade.List)
	admin.POST("/grade-levels", grade.Create)
	admin.PUT("/grade-levels/:id", grade.Update)
	admin.DELETE("/grade-levels/:id", grade.Delete)

	admin.GET("/academic-years", year.List)
	admin.GET("/academic-years/:id/next", year.Next)
	admin.POST("/academic-years", year.Create)
	admin.PUT("/academic-years/:id", year.Update)
	admin.DELETE("/academic-years/:id", year.Delete)

	admin.GET("/subjects", subj.List)
	admin.POST("/subjects", subj.Create)
	admin.PUT("/subjects/:id", subj.Update)
	admin.DELETE("/subjects/:id", subj.Delete)

	admin.POST("/timetable", tt.Create)
	admin.PUT("/timetable/:id", tt.Update)
	admin.DELETE("/timetable/:id", tt.Delete)

	// batch academic progression
	admin.POST("/progressions", prog.Run)
	admin.GET("/progressions", prog.List)

	// ===== Teacher =====
	teacher := e.Group("/teacher", authMW, middlewares.RequireRole("teacher", "admin"))
	teacher.GET("/students", std.List)
	teacher.GET("/timetable", tt.List)
	teacher.GET("/attendance", att.List)
	teacher.POST("/attendance/mark", att.Mark)
}
