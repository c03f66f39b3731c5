package dto

// DailyCount is one date-bucketed count in a time series
type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// AttendanceStatsResponse aggregates attendance for a month
type AttendanceStatsResponse struct {
	Month        string           `json:"month"`
	StatusCounts map[string]int64 `json:"statusCounts"`
	Daily        []DailyCount     `json:"daily"`
}

// TopAuthor is a post count leader in the community stats
type TopAuthor struct {
	UserID    int64  `json:"userId"`
	Name      string `json:"name"`
	PostCount int64  `json:"postCount"`
}

// CommunityStatsResponse aggregates forum activity
type CommunityStatsResponse struct {
	TotalPosts    int64       `json:"totalPosts"`
	TotalComments int64       `json:"totalComments"`
	TotalLikes    int64       `json:"totalLikes"`
	TopAuthors    []TopAuthor `json:"topAuthors"`
}

// UserStatsResponse aggregates the user base
type UserStatsResponse struct {
	TotalUsers    int64            `json:"totalUsers"`
	ByRole        map[string]int64 `json:"byRole"`
	ByTier        map[string]int64 `json:"byTier"`
	RecentSignups []DailyCount     `json:"recentSignups"`
}

// DashboardResponse is the tier-2 admin landing summary
type DashboardResponse struct {
	TodayArrivals  int64 `json:"todayArrivals"`
	TotalUsers     int64 `json:"totalUsers"`
	TotalPosts     int64 `json:"totalPosts"`
	ActiveCourses  int64 `json:"activeCourses"`
	TotalMessages  int64 `json:"totalMessages"`
	OpenFriendReqs int64 `json:"openFriendRequests"`
}
