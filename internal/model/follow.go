package model

// Follow subscribes a candidate to an employer's future postings.
type Follow struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateID uint       `gorm:"not null;uniqueIndex:idx_follow_pair" json:"candidate_id"`
	Candidate   *Candidate `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE" json:"-"`
	EmployerID  uint       `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"employer_id"`
	Employer    *Employer  `gorm:"foreignKey:EmployerID;constraint:OnDelete:CASCADE" json:"-"`
	NotifyEmail bool       `gorm:"not null" json:"notify_email"`
}
