package orchestrator

// Messages posted to the channel
const (
	MessageFetchReposFailed = "Something went wrong during fetching organization repos :("
	MessageNoRepos          = "Organization do not have any repos :("
)

// Configuration errors, reported in this priority order
const (
	MessageEmptyOrganization = "organization is empty :("
	MessageEmptyHeadBranch   = "headBranch is empty :("
	MessageEmptyBaseBranch   = "baseBranch is empty :("
)
