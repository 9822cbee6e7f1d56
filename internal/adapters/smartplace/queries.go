package smartplace

// GraphQL documents as issued by the SmartPlace web console.

const getReviewsQuery = `fragment CommonReviewReplyFields on ReviewReply {
  text
  isSuspended
  isQualified
  createdDateTime
  updatedDateTime
  isDeleted
  useReplyCandidate
  replierDisplayName
  suspendPostingReason
  __typename
}

fragment CommonReviewFields on Review {
  author {
    displayName
    reviewCount
    imageCount
    profileImage
    visitCount
    userId
    __typename
  }
  placeDetail {
    id
    __typename
  }
  bookingDetail {
    bookingUserDetail
    business
    bizItem
    items
    __typename
  }
  content {
    text
    mediaItems {
      id
      type
      thumbnail
      url
      trailer
      metadata
      __typename
    }
    rating
    tags {
      votedKeywords {
        category
        keywords {
          code
          emojiCode
          emojiUrl
          label {
            ko
            __typename
          }
          __typename
        }
        __typename
      }
      __typename
    }
    textGradeInspection {
      grade
      __typename
    }
    __typename
  }
  reply {
    ...CommonReviewReplyFields
    __typename
  }
  reactionStat {
    id
    targetId
    totalCount
    sortedTypeCountEntries
    __typename
  }
  createdDateTime
  displayUpdatedDateTime
  id
  rating
  isSuspended
  suspendPostingReason
  isQualified
  source
  mainPov
  visitCount
  visitDateTime
  cp
  hasReply
  hasText
  hasVotedKeyword
  hasNegativeTextGrade
  __typename
}

query getReviews($input: GetReviewsInput!) {
  reviews(input: $input) {
    totalCount
    items {
      ...CommonReviewFields
      __typename
    }
    __typename
  }
}
`

const createReplyMutation = `fragment CommonReviewReplyFields on ReviewReply {
  text
  isSuspended
  isQualified
  createdDateTime
  updatedDateTime
  isDeleted
  useReplyCandidate
  replierDisplayName
  suspendPostingReason
  __typename
}

mutation createReply($input: CreateReviewReplyInput!) {
  createReviewReply(input: $input) {
    reply {
      ...CommonReviewReplyFields
      __typename
    }
    __typename
  }
}
`
