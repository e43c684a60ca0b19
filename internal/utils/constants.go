package utils

// survey draft states
var PUBLISHED string = "published"
var UNPUBLISHED string = "unpublished"

// analysis job states
var ANALYSIS_PROCESSING string = "processing"
var ANALYSIS_READY string = "ready"
var ANALYSIS_FAILED string = "failed"

// analysis job types
var ANALYSIS_SINGLE string = "single"
var ANALYSIS_MULTI string = "multi"

// raw question types as stored in mongo
var QUESTION_TEXT string = "text"
var QUESTION_MULTIPLE_CHOICE string = "multiple_choice"
var QUESTION_SINGLE_CHOICE string = "single_choice"
var QUESTION_DROPDOWN string = "dropdown"
var QUESTION_CHECKBOX string = "checkbox"

// normalized question types exposed to the analyzer
var TYPE_FREE_TEXT string = "free-text"
var TYPE_CHOICE string = "choice"


// jwt
var JWT_CLAIM_ISSUER string = "survey-platform";
var AUTHORIZATION_HEADER string = "Authorization";


// redis constants
var USER_KEY_PREFIX string = "user:email:";
var SURVEY_KEY_PREFIX string = "survey:";
var ANALYSIS_KEY_PREFIX string = "analysis:";


// mongo constants
var USERS_COLLECTION string = "users";
var SURVEYS_COLLECTION string = "surveys";
var QUESTIONS_COLLECTION string = "questions";
var RESPONSES_COLLECTION string = "responses";
var ANALYSES_COLLECTION string = "ai_analyses";


// kafka, broker is overridden from env at startup.
var KAFKA_CONNECTION string = "localhost:9092"
var ANALYSIS_REQUESTED_TOPIC string = "analysis.requested"
var ANALYSIS_PROGRESS_TOPIC string = "analysis.progress"
var KAFKA_GROUP_ID string = "analysis-workers"
var KAFKA_PROGRESS_BROADCASTER_GROUP string = "analysis-progress-broadcasters"
