package models

import ("go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

type User struct {
	ID primitive.ObjectID `bson:"_id" json:"id"`
	FullName string `bson:"full_name" json:"fullName"`
	Email string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"passwordHash"`
	Points int `bson:"points" json:"points"`
	TrustScore int `bson:"trust_score" json:"trustScore"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}


type Survey struct {
	ID primitive.ObjectID `bson:"_id" json:"id"`
	Title string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	RewardPoints int `bson:"reward_points" json:"rewardPoints"`
	EstimatedMinutes int `bson:"estimated_minutes" json:"estimatedMinutes"`
	Draft string `bson:"draft" json:"draft"`//published,unpublished
	CreatorID primitive.ObjectID `bson:"creator_id" json:"creatorId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type Question struct {
	ID primitive.ObjectID `bson:"_id" json:"id"`
	SurveyID primitive.ObjectID `bson:"survey_id" json:"surveyId"`
	Order int `bson:"order" json:"order"`
	Text string `bson:"text" json:"text"`
	Type string `bson:"type" json:"type"`//text,multiple_choice,single_choice,dropdown,checkbox
	Options []string `bson:"options" json:"options"`
	IsRequired bool `bson:"is_required" json:"isRequired"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type Answer struct {
	QuestionID primitive.ObjectID `bson:"question_id" json:"questionId"`
	Value string `bson:"value" json:"value"`// empty string = no answer
}

type Response struct {
	ID primitive.ObjectID `bson:"_id" json:"id"`
	SurveyID primitive.ObjectID `bson:"survey_id" json:"surveyId"`
	UserID primitive.ObjectID `bson:"user_id" json:"userId"`
	StartedAt time.Time `bson:"started_at" json:"startedAt"`
	SubmittedAt time.Time `bson:"submitted_at" json:"submittedAt"`
	DurationMs int64 `bson:"duration_ms" json:"durationMs"`
	IsFlaggedSpam bool `bson:"is_flagged_spam" json:"isFlaggedSpam"`
	TrustImpact int `bson:"trust_impact" json:"trustImpact"`
	Answers []Answer `bson:"answers" json:"answers"`
}


// analysis job record. Only the background worker mutates it after creation.
type AiAnalysis struct {
	ID primitive.ObjectID `bson:"_id" json:"analysisId"`
	OwnerID primitive.ObjectID `bson:"owner_id" json:"ownerId"`
	SurveyIDs []primitive.ObjectID `bson:"survey_ids" json:"surveyIds"`
	Type string `bson:"type" json:"type"`//single,multi
	Status string `bson:"status" json:"status"`//processing,ready,failed
	Progress int `bson:"progress" json:"progress"`
	IDMapping IDMapping `bson:"id_mapping" json:"-"`
	Data AnalysisData `bson:"data" json:"data"`
	ErrorDetail string `bson:"error_detail,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// token -> real id maps, persisted with the job so a completed
// result can always be mapped back to stored identifiers.
type IDMapping struct {
	Surveys map[string]string `bson:"surveys" json:"surveys"`
	Questions map[string]string `bson:"questions" json:"questions"`
}


// structured result returned by the external analyzer.
type AnalysisData struct {
	Overview string `bson:"overview" json:"overview"`
	Surveys []SurveySummary `bson:"surveys" json:"surveys"`
	DataQualityNotes DataQualityNotes `bson:"data_quality_notes" json:"dataQualityNotes"`
}

type SurveySummary struct {
	SurveyID string `bson:"survey_id" json:"surveyId"`
	ResponseCountUsed int `bson:"response_count_used" json:"responseCountUsed"`
	Findings []Finding `bson:"findings" json:"findings"`
	Insights []Insight `bson:"insights" json:"insights"`
	Correlations []Correlation `bson:"correlations" json:"correlations"`
	Caveats []string `bson:"caveats" json:"caveats"`
}

type Finding struct {
	Title string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

type Insight struct {
	Theme string `bson:"theme" json:"theme"`
	Title string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Examples []string `bson:"examples" json:"examples"`
}

type Correlation struct {
	Description string `bson:"description" json:"description"`
	Evidence string `bson:"evidence" json:"evidence"`
}

type DataQualityNotes struct {
	ConfidenceScore float64 `bson:"confidence_score" json:"confidenceScore"`
	ConfidenceExplanation string `bson:"confidence_explanation" json:"confidenceExplanation"`
	Notes []string `bson:"notes" json:"notes"`
}


// payload handed to the external analyzer. The reverse maps ride along
// for later de-pseudonymization but are stripped before serialization
// into the model prompt (omitempty + nil before marshal).
type AnalysisDataset struct {
	Surveys []SurveyMeta `json:"surveys"`
	Questions []QuestionMeta `json:"questions"`
	ResponseAlignment ResponseAlignment `json:"responseAlignment"`
	ResponsesByQuestion map[string][]string `json:"responsesByQuestion"`
	ResponseCount int `json:"responseCount"`
	ReverseSurveyIDMap map[string]string `json:"reverseSurveyIdMap,omitempty"`
	ReverseQuestionIDMap map[string]string `json:"reverseQuestionIdMap,omitempty"`
}

type SurveyMeta struct {
	SurveyID string `json:"surveyId"`// short token, not the real id
	Title string `json:"title"`
	Description string `json:"description"`
}

type QuestionMeta struct {
	QuestionID string `json:"questionId"`// short token
	SurveyID string `json:"surveyId"`// short survey token
	Question string `json:"question"`
	Type string `json:"type"`//free-text,choice
	Options []string `json:"options"`
}

// documents the index alignment contract for the analyzer: slot i of
// every question sequence belongs to the same respondent.
type ResponseAlignment struct {
	Type string `json:"type"`
	Definition string `json:"definition"`
}


// request body to start an analysis. surveyIds accepts a single string
// or a list of strings.
type AnalyzeRequest struct {
	SurveyIDs interface{} `json:"surveyIds"`
}
