package store

// Well-known cache keys. They mirror the localStorage keys of the desktop
// app so a cache dump stays recognizable.
const (
	KeyAccessToken    = "suap_access_token"
	KeyRefreshToken   = "suap_refresh_token"
	KeyUsername       = "suap_username"
	KeyClassroomToken = "classroom_access_token"

	KeyProfile       = "suap_cache_profile"
	KeyAcademic      = "suap_cache_academic"
	KeyCompletion    = "suap_cache_completion"
	KeyPeriods       = "suap_cache_periods"
	KeyCurrentPeriod = "suap_cache_current_period"
	KeyGrades        = "suap_cache_grades"
	KeySchedule      = "suap_cache_schedule"
	KeyHolidays      = "suap_cache_holidays"
	KeyCoursework    = "suap_cache_coursework"

	KeyThemeMode    = "suap_saved_theme_mode"
	KeyThemeVariant = "suap_saved_theme_variant"
	KeyWallpaper    = "suap_saved_wallpaper"
)

// UserDataKeys are wiped on logout. Holidays, display preferences and the
// Classroom token survive: they are not tied to the SUAP session.
func UserDataKeys() []string {
	return []string{
		KeyAccessToken, KeyRefreshToken, KeyUsername,
		KeyProfile, KeyAcademic, KeyCompletion,
		KeyPeriods, KeyCurrentPeriod,
		KeyGrades, KeySchedule, KeyCoursework,
	}
}
